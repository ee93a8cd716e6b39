package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthService_Check(t *testing.T) {
	tests := []struct {
		name      string
		dbErr     error
		withCache bool
		cacheErr  error
		available bool
		want      HealthReport
	}{
		{
			name:      "all up without cache",
			available: true,
			want:      HealthReport{Status: StatusOK, Database: ComponentUp, Cache: ComponentDisabled, GenerationAvailable: true},
		},
		{
			name:      "database down",
			dbErr:     errors.New("unable to open database file"),
			withCache: true,
			want:      HealthReport{Status: StatusDegraded, Database: ComponentDown, Cache: ComponentUp},
		},
		{
			name:      "cache down does not degrade",
			withCache: true,
			cacheErr:  errors.New("dial tcp: connection refused"),
			available: true,
			want:      HealthReport{Status: StatusOK, Database: ComponentUp, Cache: ComponentDown, GenerationAvailable: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockInterviewRepository)
			repo.On("Ping", mock.Anything).Return(tt.dbErr)
			gen := new(MockQAGenerator)
			gen.On("Available").Return(tt.available)

			var svc HealthService
			if tt.withCache {
				c := new(MockCache)
				c.On("Ping", mock.Anything).Return(tt.cacheErr)
				svc = NewHealthService(repo, c, gen)
			} else {
				svc = NewHealthService(repo, nil, gen)
			}

			assert.Equal(t, tt.want, svc.Check(context.Background()))
		})
	}
}
