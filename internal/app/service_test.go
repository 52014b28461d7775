package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/riskradar/internal/adapters/dataset"
	app "github.com/okian/riskradar/internal/app"
	"github.com/okian/riskradar/internal/domain/model"
	"github.com/okian/riskradar/internal/domain/weights"
	"github.com/okian/riskradar/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const testCSV = `city,country,region,latitude,longitude,population_millions,road_quality_index,power_grid_stability,water_security,healthcare_capacity,disaster_preparedness_score,gdp_per_capita_usd
Tokyo,Japan,Kanto,35.68,139.69,37.4,85,90,80,88,82,42000
Lagos,Nigeria,Lagos State,6.52,3.37,15.4,45,40,35,42,38,2500
Berlin,Germany,Berlin,52.52,13.40,3.6,82,88,85,86,80,51000
Jakarta,Indonesia,Java,-6.21,106.85,10.6,55,50,48,52,45,4800
`

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func equalRequest() map[model.Pillar]float64 {
	out := make(map[model.Pillar]float64)
	for _, p := range model.AllPillars() {
		out[p] = 1
	}
	return out
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service pointed at a valid dataset", t, func() {
		svc := app.New(app.WithDatasetPath(writeDataset(t, testCSV)))

		Convey("When starting", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			Convey("Then every city is scored under equal default weights", func() {
				top, err := svc.TopN(ctx, 4)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 4)
				for _, r := range top {
					So(r.Composite, ShouldBeBetweenOrEqual, 0, 1)
					So(len(r.Breakdown), ShouldEqual, len(model.AllPillars()))
				}
			})

			Convey("Then the active scenario has equal weights summing to one", func() {
				sc := svc.ActiveScenario()
				So(sc.ID, ShouldNotBeEmpty)
				So(sc.Weights.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("Then stats describe the loaded dataset", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["cities"], ShouldEqual, 4)
				So(stats["droppedRows"], ShouldEqual, 0)
				So(stats["populationMillions"], ShouldAlmostEqual, 67.0, 1e-9)
				So(stats["highestRiskCity"], ShouldNotBeEmpty)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service pointed at a missing dataset", t, func() {
		svc := app.New(app.WithDatasetPath(filepath.Join(t.TempDir(), "absent.csv")))

		Convey("Then Start fails and nothing is scored", func() {
			So(svc.Start(ctx), ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
		})
	})

	Convey("Given invalid default weights", t, func() {
		svc := app.New(
			app.WithDatasetPath(writeDataset(t, testCSV)),
			app.WithDefaultWeights(map[string]float64{"transport": 1}),
		)

		Convey("Then Start surfaces the configuration error", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, weights.ErrConfiguration), ShouldBeTrue)
		})
	})

	Convey("Given a dataset repeating a city", t, func() {
		dup := testCSV + "Tokyo,Japan,Kanto,35.68,139.69,37.4,10,10,10,10,10,900\n"

		Convey("When the policy rejects bad rows", func() {
			svc := app.New(app.WithDatasetPath(writeDataset(t, dup)))

			Convey("Then Start aborts rather than scoring the city twice", func() {
				err := svc.Start(ctx)
				So(errors.Is(err, dataset.ErrRow), ShouldBeTrue)
			})
		})

		Convey("When the policy drops bad rows", func() {
			svc := app.New(
				app.WithDatasetPath(writeDataset(t, dup)),
				app.WithLoader(dataset.New(dataset.WithRowPolicy(dataset.PolicyDrop))),
			)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the ranking names each city once, scored from the first row", func() {
				top, err := svc.TopN(ctx, 10)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 4)

				seen := make(map[string]bool, len(top))
				for _, r := range top {
					So(seen[r.ID], ShouldBeFalse)
					seen[r.ID] = true
				}

				tokyo, err := svc.City(ctx, "tokyo-japan")
				So(err, ShouldBeNil)
				So(tokyo.Composite, ShouldBeLessThan, 0.5)
			})

			Convey("And stats count the city and its population once", func() {
				stats := svc.GetStats()
				So(stats["cities"], ShouldEqual, 4)
				So(stats["droppedRows"], ShouldEqual, 1)
				So(stats["populationMillions"], ShouldAlmostEqual, 67.0, 1e-9)
			})
		})
	})

	Convey("Given a dataset with a bad row and a drop policy", t, func() {
		bad := testCSV + "Paris,France,Ile-de-France,48.85,2.35,eleven,80,85,83,84,78,44000\n"
		svc := app.New(
			app.WithDatasetPath(writeDataset(t, bad)),
			app.WithLoader(dataset.New(dataset.WithRowPolicy(dataset.PolicyDrop))),
		)

		Convey("Then the load succeeds and the drop is reported", func() {
			So(svc.Start(ctx), ShouldBeNil)
			stats := svc.GetStats()
			So(stats["cities"], ShouldEqual, 4)
			So(stats["droppedRows"], ShouldEqual, 1)
		})
	})
}

func TestService_ApplyScenario(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := app.New(app.WithDatasetPath(writeDataset(t, testCSV)))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When applying the same weighting twice", func() {
			requested := equalRequest()
			requested[model.PillarTransport] = 40
			requested[model.PillarWater] = 25

			first, err := svc.ApplyScenario(ctx, requested)
			So(err, ShouldBeNil)
			firstTop, err := svc.TopN(ctx, 4)
			So(err, ShouldBeNil)

			second, err := svc.ApplyScenario(ctx, requested)
			So(err, ShouldBeNil)
			secondTop, err := svc.TopN(ctx, 4)
			So(err, ShouldBeNil)

			Convey("Then scores and tiers are identical", func() {
				So(secondTop, ShouldResemble, firstTop)
			})

			Convey("And the normalized weights are identical", func() {
				So(second.Weights, ShouldResemble, first.Weights)
			})
		})

		Convey("When scaling every weight by a positive constant", func() {
			requested := equalRequest()
			requested[model.PillarHealthcare] = 10

			base, err := svc.ApplyScenario(ctx, requested)
			So(err, ShouldBeNil)
			baseTop, err := svc.TopN(ctx, 4)
			So(err, ShouldBeNil)

			scaled := make(map[model.Pillar]float64, len(requested))
			for p, w := range requested {
				scaled[p] = w * 100
			}
			next, err := svc.ApplyScenario(ctx, scaled)
			So(err, ShouldBeNil)
			nextTop, err := svc.TopN(ctx, 4)
			So(err, ShouldBeNil)

			Convey("Then the configuration and the ranking are unchanged", func() {
				So(next.Weights, ShouldResemble, base.Weights)
				So(nextTop, ShouldResemble, baseTop)
			})
		})

		Convey("When applying an all-zero weighting", func() {
			before := svc.ActiveScenario()
			beforeTop, err := svc.TopN(ctx, 4)
			So(err, ShouldBeNil)

			zero := make(map[model.Pillar]float64)
			for _, p := range model.AllPillars() {
				zero[p] = 0
			}
			_, err = svc.ApplyScenario(ctx, zero)

			Convey("Then the request is rejected as a configuration error", func() {
				So(errors.Is(err, weights.ErrNoPositiveWeight), ShouldBeTrue)
			})

			Convey("And the previously active scoring is untouched", func() {
				after := svc.ActiveScenario()
				So(after.ID, ShouldEqual, before.ID)
				So(after.Weights, ShouldResemble, before.Weights)

				afterTop, err := svc.TopN(ctx, 4)
				So(err, ShouldBeNil)
				So(afterTop, ShouldResemble, beforeTop)
			})
		})

		Convey("When applying weights naming an unknown pillar", func() {
			requested := equalRequest()
			requested[model.Pillar("crime")] = 5

			_, err := svc.ApplyScenario(ctx, requested)

			Convey("Then the mismatch is rejected", func() {
				So(errors.Is(err, weights.ErrPillarMismatch), ShouldBeTrue)
			})
		})

		Convey("When a single pillar carries all the weight", func() {
			requested := make(map[model.Pillar]float64)
			for _, p := range model.AllPillars() {
				requested[p] = 0
			}
			requested[model.PillarEconomic] = 1

			_, err := svc.ApplyScenario(ctx, requested)
			So(err, ShouldBeNil)

			Convey("Then each composite equals that pillar's gap", func() {
				top, err := svc.TopN(ctx, 4)
				So(err, ShouldBeNil)
				for _, r := range top {
					for _, c := range r.Breakdown {
						if c.Pillar == model.PillarEconomic {
							So(r.Composite, ShouldAlmostEqual, c.Gap, 1e-12)
						} else {
							So(c.Contribution, ShouldEqual, 0)
						}
					}
				}
			})
		})

		Convey("When looking up one city", func() {
			rec, err := svc.City(ctx, "tokyo-japan")
			So(err, ShouldBeNil)

			Convey("Then the breakdown reproduces the composite", func() {
				var sum float64
				for _, c := range rec.Breakdown {
					sum += c.Contribution
				}
				So(sum, ShouldAlmostEqual, rec.Composite, 1e-9)
			})
		})
	})
}
