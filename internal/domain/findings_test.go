package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindings_UnmarshalJSON(t *testing.T) {
	t.Run("known statuses decode", func(t *testing.T) {
		raw := `{
			"floors": [{
				"name": "Floor 2",
				"extinguisher": {"status": "Pressure Low", "types": {"ABC": 2, "CO2": 1}},
				"hydrant": {"valve": "Lugs / Wheel Missing", "hose": ""},
				"refuge_area": {"status": "Obstructed / Occupied", "photo_url": "r.jpg"}
			}],
			"rooms": [{"name": "Lift Room", "housekeeping": "Poor", "accessibility": "Clear",
				"extinguisher": {"status": "Missing"}, "remarks": ""}],
			"systems": [{"name": "Fire Alarm System", "status": "Needs Attention", "notes": ""}],
			"pumps": [{"name": "Diesel Pump", "status": "Auto (Working)", "pressure": "7 bar", "remarks": ""}],
			"remarks": "ok"
		}`

		var f Findings
		require.NoError(t, json.Unmarshal([]byte(raw), &f))

		require.Len(t, f.Floors, 1)
		assert.Equal(t, ExtinguisherPressureLow, f.Floors[0].Extinguisher.Status)
		assert.Equal(t, 2, f.Floors[0].Extinguisher.Types[ExtinguisherABC])
		assert.Equal(t, ValveLugsMissing, f.Floors[0].Hydrant.Valve)
		assert.Equal(t, HoseStatus(""), f.Floors[0].Hydrant.Hose)
		assert.Nil(t, f.Floors[0].Alarm)
		assert.Equal(t, RefugeObstructed, f.Floors[0].RefugeArea.Status)
		assert.Equal(t, RoomExtinguisherMissing, f.Rooms[0].Extinguisher.Status)
		assert.Equal(t, SystemNeedsAttention, f.Systems[0].Status)
		assert.True(t, f.Pumps[0].Status.IsWorking())
	})

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "unknown extinguisher status",
			raw:     `{"floors":[{"name":"G","extinguisher":{"status":"Rusty"}}]}`,
			wantErr: `unknown extinguisher status "Rusty"`,
		},
		{
			name:    "unknown pump status",
			raw:     `{"pumps":[{"name":"Diesel Pump","status":"Working"}]}`,
			wantErr: `unknown pump status "Working"`,
		},
		{
			name:    "empty system status",
			raw:     `{"systems":[{"name":"Fire Alarm System","status":""}]}`,
			wantErr: `unknown system status ""`,
		},
		{
			name:    "case matters",
			raw:     `{"rooms":[{"name":"Lift Room","housekeeping":"good"}]}`,
			wantErr: `unknown housekeeping status "good"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Findings
			err := json.Unmarshal([]byte(tt.raw), &f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPumpStatus_IsWorking(t *testing.T) {
	assert.True(t, PumpAutoWorking.IsWorking())
	assert.True(t, PumpManualWorking.IsWorking())
	assert.False(t, PumpNotWorking.IsWorking())
	assert.False(t, PumpNotApplicable.IsWorking())
	assert.False(t, PumpDoesNotExist.IsWorking())
}

func TestStructure_Systems(t *testing.T) {
	s := Structure{
		Systems:      []string{SystemHoseReel, SystemFireAlarm},
		RefugeFloors: []string{"Floor 7"},
	}

	assert.True(t, s.HasHydrant())
	assert.False(t, s.HasSprinkler())
	assert.True(t, s.HasSystem(SystemFireAlarm))
	assert.True(t, s.IsRefugeFloor("Floor 7"))
	assert.False(t, s.IsRefugeFloor("Floor 8"))
}
