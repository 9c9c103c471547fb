package compliance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/fireaudit/internal/domain"
)

func validFindings() domain.Findings {
	f := NewFindings(NormalizeStructure(domain.ClientTypeResidential, domain.Structure{
		Floors:  1,
		Rooms:   []string{"Pump Room"},
		Systems: []string{domain.SystemHydrantValve},
	}))
	for i := range f.Pumps {
		f.Pumps[i].Status = domain.PumpAutoWorking
	}
	f.Remarks = "All equipment inspected."
	return f
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(f *domain.Findings)
		wantFields []string
	}{
		{
			name:   "valid record",
			mutate: func(f *domain.Findings) {},
		},
		{
			name:       "unresolved pump",
			mutate:     func(f *domain.Findings) { f.Pumps[0].Status = domain.PumpNotApplicable },
			wantFields: []string{"pumps"},
		},
		{
			name:       "blank remarks",
			mutate:     func(f *domain.Findings) { f.Remarks = "   " },
			wantFields: []string{"remarks"},
		},
		{
			name:       "failed extinguisher without photo",
			mutate:     func(f *domain.Findings) { f.Floors[0].Extinguisher.Status = domain.ExtinguisherExpired },
			wantFields: []string{"photos"},
		},
		{
			name: "failed extinguisher with photo",
			mutate: func(f *domain.Findings) {
				f.Floors[0].Extinguisher.Status = domain.ExtinguisherExpired
				f.Floors[0].Extinguisher.PhotoURL = "https://img.example.com/1.jpg"
			},
		},
		{
			name:   "not available extinguisher needs no photo",
			mutate: func(f *domain.Findings) { f.Floors[0].Extinguisher.Status = domain.ExtinguisherNotAvailable },
		},
		{
			name:   "hose not available needs no photo",
			mutate: func(f *domain.Findings) { f.Floors[0].Hydrant.Hose = domain.HoseNotAvailable },
		},
		{
			name:       "broken pump without photo",
			mutate:     func(f *domain.Findings) { f.Pumps[0].Status = domain.PumpNotWorking },
			wantFields: []string{"photos"},
		},
		{
			name:       "unrecognized status",
			mutate:     func(f *domain.Findings) { f.Systems[0].Status = "Melted" },
			wantFields: []string{"findings"},
		},
		{
			name: "several problems at once",
			mutate: func(f *domain.Findings) {
				f.Remarks = ""
				f.Pumps[1].Status = domain.PumpNotApplicable
				f.Rooms[0].Extinguisher.Status = domain.RoomExtinguisherMissing
			},
			wantFields: []string{"pumps", "remarks", "photos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFindings()
			tt.mutate(&f)

			err := ValidateSubmission(f)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Len(t, ve.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, ve.Fields, field)
			}
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestMissingPhotos(t *testing.T) {
	f := domain.Findings{
		Floors: []domain.FloorFinding{
			{
				Name:         "Ground",
				Extinguisher: domain.ExtinguisherCheck{Status: domain.ExtinguisherOK},
				Hydrant:      &domain.HydrantCheck{Valve: domain.ValveLeaking, Hose: domain.HoseDamaged},
				Sprinkler:    &domain.SprinklerCheck{Status: domain.SprinklerPainted},
				Alarm:        &domain.AlarmCheck{Status: domain.AlarmFault, PhotoURL: "x.jpg"},
				RefugeArea:   &domain.RefugeCheck{Status: domain.RefugeLocked},
			},
		},
		Systems: []domain.SystemFinding{
			{Name: domain.SystemFireAlarm, Status: domain.SystemNeedsAttention},
			{Name: domain.SystemSprinkler, Status: domain.SystemDoesNotExist},
		},
	}

	assert.Equal(t, []string{
		"Ground: Hydrant Valve (Leaking)",
		"Ground: Hose Reel (Damaged)",
		"Ground: Sprinkler (Painted)",
		"Ground: Refuge Area (Locked)",
		"System: Fire Alarm System (Needs Attention)",
	}, MissingPhotos(f))
}

func TestValidateSubmission_TruncatesPhotoList(t *testing.T) {
	f := validFindings()
	for i := 0; i < 7; i++ {
		f.Systems = append(f.Systems, domain.SystemFinding{Name: "Extra", Status: domain.SystemNotOperational})
	}

	err := ValidateSubmission(f)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields["photos"], "...and 2 more")
}
