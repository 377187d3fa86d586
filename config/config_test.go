package config_test

import (
	"testing"

	"github.com/mna/zklint/config"
	"github.com/stretchr/testify/assert"
)

func TestCurveString(t *testing.T) {
	cases := []struct {
		c    config.Curve
		want string
	}{
		{config.BN254, "bn254"},
		{config.BLS12_381, "bls12_381"},
		{config.Goldilocks, "goldilocks"},
		{config.Curve(99), "curve(99)"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.c.String())
	}
}

func TestLevelString(t *testing.T) {
	cases := []struct {
		l    config.Level
		want string
	}{
		{config.LevelWarning, "WARNING"},
		{config.LevelError, "ERROR"},
		{config.Level(99), "level(99)"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.l.String())
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, config.BN254, config.DefaultCurve)
	assert.Equal(t, config.LevelWarning, config.DefaultLevel)
}
