package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/internal/models"
)

// AnalyticsService computes the aggregate views for a user's job search.
// Everything is recomputed from storage on each call; there is no cache.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status string
	Count  int64
}

// StatusDistribution counts the user's applications grouped by status.
// Statuses with no applications are absent from the result.
func (s *AnalyticsService) StatusDistribution(userID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := s.db.Model(&models.Application{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CompanySalary is the average listed salary for one company.
type CompanySalary struct {
	Company   string
	AvgSalary float64
}

// SalaryByCompany averages the user's listed salaries per company,
// ignoring listings without a positive salary.
func (s *AnalyticsService) SalaryByCompany(userID uint) ([]CompanySalary, error) {
	var rows []CompanySalary
	err := s.db.Model(&models.JobListing{}).
		Select("companies.name as company, avg(job_listings.salary) as avg_salary").
		Joins("INNER JOIN companies ON companies.id = job_listings.company_id").
		Where("job_listings.user_id = ? AND job_listings.salary > ?", userID, 0).
		Group("companies.name").
		Order("companies.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WeekdayCount is the number of applications submitted on one weekday.
// Weekday follows time.Weekday numbering: 0 = Sunday ... 6 = Saturday.
type WeekdayCount struct {
	Weekday time.Weekday
	Count   int64
}

// ApplicationsByWeekday counts the user's applications per day of week,
// ordered Sunday through Saturday. Days without applications are absent.
// The fold happens in Go: day-of-week extraction is not portable between
// the sqlite and postgres drivers.
func (s *AnalyticsService) ApplicationsByWeekday(userID uint) ([]WeekdayCount, error) {
	var dates []time.Time
	err := s.db.Model(&models.Application{}).
		Where("user_id = ?", userID).
		Pluck("application_date", &dates).Error
	if err != nil {
		return nil, err
	}
	var counts [7]int64
	for _, d := range dates {
		counts[int(d.Weekday())]++
	}
	out := make([]WeekdayCount, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		out = append(out, WeekdayCount{Weekday: wd, Count: counts[wd]})
	}
	return out, nil
}
