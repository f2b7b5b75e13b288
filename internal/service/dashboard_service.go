package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
)

type weekPlanSource interface {
	WeekPlans(ctx context.Context, weekStart string) (map[string]models.WeeklyPlan, error)
}

type upcomingDatesSource interface {
	Upcoming(ctx context.Context, today time.Time) (models.UpcomingDates, error)
}

type mentorNameSource interface {
	NameOf(ctx context.Context, id string) string
}

// DashboardService aggregates the read-only landing page: today's timetable
// column grouped by mentor, the current week's plans and upcoming calendar
// entries. It owns no state and performs no writes.
type DashboardService struct {
	timetable timetableSource
	plans     weekPlanSource
	dates     upcomingDatesSource
	mentors   mentorNameSource
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService instantiates DashboardService.
func NewDashboardService(timetable timetableSource, plans weekPlanSource, dates upcomingDatesSource, mentors mentorNameSource, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		timetable: timetable,
		plans:     plans,
		dates:     dates,
		mentors:   mentors,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary builds the dashboard aggregate for today.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	today := s.now()
	date := today.Format("2006-01-02")
	day := strings.ToLower(today.Weekday().String())
	weekStart, err := WeekStartOf(date)
	if err != nil {
		return nil, err
	}

	grid, err := s.timetable.Get(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	mentorSummaries := s.groupByMentor(ctx, grid[day])

	weekPlans, err := s.plans.WeekPlans(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.dates.Upcoming(ctx, today)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		Date:          date,
		Day:           day,
		Mentors:       mentorSummaries,
		WeeklyPlans:   weekPlans,
		UpcomingDates: upcoming,
	}, nil
}

// groupByMentor collapses a day's slots into one row per mentor with the
// student ids and category tags deduplicated across slots.
func (s *DashboardService) groupByMentor(ctx context.Context, slots map[string][]models.SlotAssignment) []models.MentorDaySummary {
	type group struct {
		students   map[string]struct{}
		categories map[models.Category]struct{}
	}
	groups := make(map[string]*group)
	for _, assignments := range slots {
		for _, a := range assignments {
			g, ok := groups[a.MentorID]
			if !ok {
				g = &group{students: make(map[string]struct{}), categories: make(map[models.Category]struct{})}
				groups[a.MentorID] = g
			}
			for _, id := range a.StudentIDs {
				g.students[id] = struct{}{}
			}
			g.categories[a.Category] = struct{}{}
		}
	}

	summaries := make([]models.MentorDaySummary, 0, len(groups))
	for mentorID, g := range groups {
		summary := models.MentorDaySummary{
			MentorID:   mentorID,
			MentorName: s.mentors.NameOf(ctx, mentorID),
			StudentIDs: sortedKeys(g.students),
		}
		for _, c := range models.AllCategories {
			if _, ok := g.categories[c]; ok {
				summary.Categories = append(summary.Categories, c)
			}
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].MentorName < summaries[j].MentorName })
	return summaries
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
