package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceStatusValidation(t *testing.T) {
	for _, s := range AttendanceStatuses {
		assert.True(t, IsValidAttendanceStatus(s), s)
	}
	assert.False(t, IsValidAttendanceStatus("Hadir"))
	assert.False(t, IsValidAttendanceStatus(""))
}

func TestInstrumentAndRoomValidation(t *testing.T) {
	assert.True(t, IsValidInstrument("Piano"))
	assert.False(t, IsValidInstrument("piano")) // case-sensitive, sesuai nilai tersimpan
	assert.True(t, IsValidRoom("Home Visit"))
	assert.False(t, IsValidRoom("Ruang 4"))
}

func TestDurationValidation(t *testing.T) {
	assert.True(t, IsValidDuration(30))
	assert.True(t, IsValidDuration(45))
	assert.True(t, IsValidDuration(60))
	assert.False(t, IsValidDuration(90))
}
