package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given no overrides", t, func() {
		cfg, err := Load(ctx)

		Convey("Then the documented defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.DatasetPath, ShouldEqual, "data/city_infrastructure.csv")
			So(cfg.RowPolicy, ShouldEqual, "reject")
			So(cfg.MaxRankingLimit, ShouldEqual, 100)
			So(cfg.LowThreshold, ShouldEqual, 0.33)
			So(cfg.HighThreshold, ShouldEqual, 0.66)
			So(cfg.GDPTargetUSD, ShouldEqual, 60_000.0)
			So(cfg.PopulationCeilingMillions, ShouldEqual, 40.0)
			So(cfg.DefaultWeights, ShouldBeEmpty)
		})
	})

	Convey("Given environment overrides", t, func() {
		t.Setenv("RADAR_ADDR", ":8088")
		t.Setenv("RADAR_ROW_POLICY", "drop")
		t.Setenv("RADAR_LOW_THRESHOLD", "0.25")
		t.Setenv("RADAR_MAX_RANKING_LIMIT", "25")

		cfg, err := Load(ctx)

		Convey("Then the environment wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8088")
			So(cfg.RowPolicy, ShouldEqual, "drop")
			So(cfg.LowThreshold, ShouldEqual, 0.25)
			So(cfg.MaxRankingLimit, ShouldEqual, 25)

			Convey("And untouched fields keep their defaults", func() {
				So(cfg.HighThreshold, ShouldEqual, 0.66)
			})
		})
	})

	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "radar.yaml")
		yaml := "addr: \":7070\"\nrow_policy: drop\ndefault_weights:\n  transport: 40\n  water: 25\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("RADAR_CONFIG", path)

		Convey("Then the file overrides defaults", func() {
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.RowPolicy, ShouldEqual, "drop")
			So(cfg.DefaultWeights["transport"], ShouldEqual, 40.0)
			So(cfg.DefaultWeights["water"], ShouldEqual, 25.0)
		})

		Convey("And the environment still wins over the file", func() {
			t.Setenv("RADAR_ADDR", ":6060")
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("RADAR_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

		Convey("Then loading fails with a load error", func() {
			_, err := Load(ctx)
			So(errors.Is(err, ErrLoadConfig), ShouldBeTrue)
		})
	})

	Convey("Given invalid values", t, func() {
		Convey("An unknown row policy is rejected", func() {
			t.Setenv("RADAR_ROW_POLICY", "ignore")
			_, err := Load(ctx)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Inverted thresholds are rejected", func() {
			t.Setenv("RADAR_LOW_THRESHOLD", "0.8")
			t.Setenv("RADAR_HIGH_THRESHOLD", "0.2")
			_, err := Load(ctx)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A non-positive ranking limit is rejected", func() {
			t.Setenv("RADAR_MAX_RANKING_LIMIT", "0")
			_, err := Load(ctx)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
