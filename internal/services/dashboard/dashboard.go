package dashboard

import (
	"fmt"
	"math"
	"time"

	"log/slog"

	"github.com/codeedex/hr-office/internal/db"
	"gorm.io/gorm"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "DashboardService"),
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(database *gorm.DB) *DashboardService {
	return &DashboardService{db: database}
}

// Summary is the landing-page snapshot: workforce counts, project count and
// today's attendance.
type Summary struct {
	StaffCount   int64 `json:"staffCount"`
	InternCount  int64 `json:"internCount"`
	ProjectCount int64 `json:"projectCount"`

	PresentToday      int64   `json:"presentToday"`
	AttendancePercent float64 `json:"attendancePercent"` // of active employees, one decimal
}

// Summary computes today's dashboard numbers. Only active employees count
// toward the workforce; the attendance percentage is 0 when there is nobody
// to attend.
func (s *DashboardService) Summary(now time.Time) (*Summary, error) {
	log.Info("summary:start")

	out := &Summary{}

	err := s.db.Model(&db.Employee{}).
		Where("employment_type = ? AND status = ?", db.EmploymentStaff, db.StatusActive).
		Count(&out.StaffCount).Error
	if err != nil {
		return nil, fmt.Errorf("count staff: %w", err)
	}

	err = s.db.Model(&db.Employee{}).
		Where("employment_type = ? AND status = ?", db.EmploymentIntern, db.StatusActive).
		Count(&out.InternCount).Error
	if err != nil {
		return nil, fmt.Errorf("count interns: %w", err)
	}

	if err := s.db.Model(&db.Project{}).Count(&out.ProjectCount).Error; err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	err = s.db.Model(&db.AttendanceRecord{}).
		Where("date = ?", db.DateOf(now)).
		Distinct("employee_id").
		Count(&out.PresentToday).Error
	if err != nil {
		return nil, fmt.Errorf("count present today: %w", err)
	}

	if total := out.StaffCount + out.InternCount; total > 0 {
		percent := float64(out.PresentToday) / float64(total) * 100
		out.AttendancePercent = math.Round(percent*10) / 10
	}

	log.Info("summary:success", "present", out.PresentToday)
	return out, nil
}
