package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/emscoord/internship-api/internal/models"
)

func dashboardFixtureDate() time.Time {
	return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
}

func seedAlertingInternship(t *testing.T, repo *memoryInternshipRepo) {
	t.Helper()
	overdue := dashboardFixtureDate().AddDate(0, 0, -3)
	require.NoError(t, repo.Create(context.Background(), &models.Internship{
		StudentID:           1,
		Student:             models.Student{ID: 1, FirstName: "Jordan", LastName: "Avery"},
		CurrentPhase:        models.PhaseMentorship,
		Status:              models.StatusOnTrack,
		Phase1EvalScheduled: &overdue,
	}))
}

func TestDashboardAlertsCacheMissThenHit(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := newMemoryInternshipRepo()
	seedAlertingInternship(t, repo)

	svc := NewDashboardService(repo, redisClient, time.Minute, testLogger()).(*dashboardService)
	svc.now = dashboardFixtureDate

	resp, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Equal(t, 1, resp.Total)
	require.Len(t, resp.Alerts.Critical, 1)
	require.Equal(t, "Phase 1 eval overdue", resp.Alerts.Critical[0].Reason)

	// repo mutations must not show through while the cache entry lives
	repo.internships = map[uint]models.Internship{}

	cached, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Equal(t, 1, cached.Total)
	require.Len(t, cached.Alerts.Critical, 1)
}

func TestDashboardAlertsCacheExpiry(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := newMemoryInternshipRepo()
	seedAlertingInternship(t, repo)

	svc := NewDashboardService(repo, redisClient, time.Minute, testLogger()).(*dashboardService)
	svc.now = dashboardFixtureDate

	_, err = svc.Alerts(context.Background())
	require.NoError(t, err)

	server.FastForward(2 * time.Minute)
	repo.internships = map[uint]models.Internship{}

	resp, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Equal(t, 0, resp.Total)
}

func TestDashboardAlertsWithoutRedis(t *testing.T) {
	repo := newMemoryInternshipRepo()
	seedAlertingInternship(t, repo)

	svc := NewDashboardService(repo, nil, time.Minute, testLogger()).(*dashboardService)
	svc.now = dashboardFixtureDate

	resp, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Len(t, resp.Alerts.Critical, 1)
}

func TestDashboardAlertsSurvivesBrokenCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	// a closed server makes every cache call fail
	server.Close()

	repo := newMemoryInternshipRepo()
	seedAlertingInternship(t, repo)

	svc := NewDashboardService(repo, redisClient, time.Minute, testLogger()).(*dashboardService)
	svc.now = dashboardFixtureDate

	resp, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Len(t, resp.Alerts.Critical, 1)
}
