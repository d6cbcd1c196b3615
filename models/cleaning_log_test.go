package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Now()
	later := now.Add(30 * time.Minute)
	evenLater := now.Add(45 * time.Minute)

	log := CleaningLog{}
	assert.Equal(t, StatusAvailable, log.DeriveStatus())

	log.StartTime = &now
	assert.Equal(t, StatusInProgress, log.DeriveStatus())

	log.FinishTime = &later
	assert.Equal(t, StatusFinished, log.DeriveStatus())

	log.CheckedTime = &evenLater
	assert.Equal(t, StatusChecked, log.DeriveStatus())
}

func TestDeriveStatusCheckedWinsOverMissingStart(t *testing.T) {
	// A checked record stays checked even if earlier timestamps are
	// missing; precedence is checked > finished > in_progress.
	now := time.Now()
	log := CleaningLog{CheckedTime: &now}
	assert.Equal(t, StatusChecked, log.DeriveStatus())

	log = CleaningLog{FinishTime: &now}
	assert.Equal(t, StatusFinished, log.DeriveStatus())
}

func TestDuration(t *testing.T) {
	start := time.Date(2025, 8, 29, 9, 0, 0, 0, time.UTC)
	finish := start.Add(42 * time.Minute)

	log := CleaningLog{}
	assert.Nil(t, log.Duration())

	log.StartTime = &start
	assert.Nil(t, log.Duration())

	log.FinishTime = &finish
	d := log.Duration()
	assert.NotNil(t, d)
	assert.Equal(t, 42*time.Minute, *d)
}
