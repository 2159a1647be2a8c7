package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDefaults(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init with defaults failed: %v", err)
	}
	c := Cfg()

	if c.Ball.Friction >= 0 {
		t.Errorf("friction = %v, want negative", c.Ball.Friction)
	}
	if c.Player.MaxSpeedWithBall >= c.Player.MaxSpeedWithoutBall {
		t.Error("carrying the ball should slow a player down")
	}
	if c.Pitch.NumRegionsX*c.Pitch.NumRegionsY == 0 {
		t.Error("region grid is empty")
	}
}

func TestInitOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("team:\n  max_shooting_force: 9.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	c := Cfg()

	if c.Team.MaxShootingForce != 9.5 {
		t.Errorf("max_shooting_force = %v, want 9.5 from overlay", c.Team.MaxShootingForce)
	}
	// Untouched values keep their defaults.
	if c.Ball.Mass != 1.0 {
		t.Errorf("ball.mass = %v, want default 1.0", c.Ball.Mass)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	c := Cfg().Clone()

	c.Ball.Friction = 0.1
	if err := c.Validate(); err == nil {
		t.Error("positive friction accepted")
	}

	c = Cfg().Clone()
	c.Physics.DT = 0
	if err := c.Validate(); err == nil {
		t.Error("zero dt accepted")
	}

	c = Cfg().Clone()
	c.Player.KickAccuracy = 1.5
	if err := c.Validate(); err == nil {
		t.Error("kick accuracy above 1 accepted")
	}

	// Three columns leave no spots in the opponent half.
	c = Cfg().Clone()
	c.SupportSpots.NumX = 3
	if err := c.Validate(); err == nil {
		t.Error("support spot grid without opponent-half columns accepted")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := Cfg().WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}
	if err := Init(path); err != nil {
		t.Fatalf("re-reading snapshot failed: %v", err)
	}
}
