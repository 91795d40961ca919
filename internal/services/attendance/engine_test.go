package attendance

import (
	"sync"
	"testing"
	"time"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
	"gorm.io/datatypes"
)

// fakeStore is an in-memory Store. The mutex stands in for the per-employee
// row lock: every WithEmployeeLock call serializes.
type fakeStore struct {
	mu        sync.Mutex
	employees map[string]*db.Employee

	nextID     uint
	attendance []*db.AttendanceRecord
	leaves     []*db.LeaveRecord
	logins     []*db.LoginHistory
}

func newFakeStore(codes ...string) *fakeStore {
	s := &fakeStore{employees: make(map[string]*db.Employee), nextID: 1}
	for i, code := range codes {
		s.employees[code] = &db.Employee{ID: uint(i + 1), EmployeeID: code}
	}
	return s
}

func (s *fakeStore) WithEmployeeLock(code string, fn func(tx TxStore, emp *db.Employee) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[code]
	if !ok {
		return apperr.NotFoundf("employee %q not found", code)
	}
	return fn(&fakeTxStore{s: s}, emp)
}

type fakeTxStore struct {
	s *fakeStore
}

func (t *fakeTxStore) FindOpenSession(employeeID uint) (*db.AttendanceRecord, error) {
	for i := len(t.s.attendance) - 1; i >= 0; i-- {
		r := t.s.attendance[i]
		if r.EmployeeID == employeeID && r.CheckOut == nil {
			return r, nil
		}
	}
	return nil, nil
}

func (t *fakeTxStore) CreateAttendance(record *db.AttendanceRecord) error {
	for _, r := range t.s.attendance {
		if r.EmployeeID == record.EmployeeID && sameDate(r.Date, record.Date) {
			return apperr.Duplicatef("attendance already recorded for this date")
		}
	}
	record.ID = t.s.nextID
	t.s.nextID++
	t.s.attendance = append(t.s.attendance, record)
	return nil
}

func (t *fakeTxStore) SaveAttendance(record *db.AttendanceRecord) error { return nil }

func (t *fakeTxStore) HasLeave(employeeID uint, date datatypes.Date) (bool, error) {
	for _, r := range t.s.leaves {
		if r.EmployeeID == employeeID && sameDate(r.LeaveDate, date) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTxStore) CreateLeave(record *db.LeaveRecord) error {
	record.ID = t.s.nextID
	t.s.nextID++
	t.s.leaves = append(t.s.leaves, record)
	return nil
}

func (t *fakeTxStore) FindLogin(employeeID uint, date datatypes.Date) (*db.LoginHistory, error) {
	for _, r := range t.s.logins {
		if r.EmployeeID == employeeID && sameDate(r.LoginDate, date) {
			return r, nil
		}
	}
	return nil, nil
}

func (t *fakeTxStore) CreateLogin(record *db.LoginHistory) error {
	record.ID = t.s.nextID
	t.s.nextID++
	t.s.logins = append(t.s.logins, record)
	return nil
}

func (t *fakeTxStore) SaveLogin(record *db.LoginHistory) error { return nil }

func sameDate(a, b datatypes.Date) bool {
	return time.Time(a).Equal(time.Time(b))
}

func testConfig() Config {
	return Config{StandardWorkHours: 8, DefaultBreakMinutes: 60}
}

func TestCheckInThenOut(t *testing.T) {
	t.Parallel()

	store := newFakeStore("EMP001")
	engine := NewEngine(store, testConfig())
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	event, err := engine.CheckInOrOut("EMP001", in)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if event.Status != StatusCheckedIn {
		t.Fatalf("first call status = %q, want %q", event.Status, StatusCheckedIn)
	}
	if event.Record.WorkingHours != nil {
		t.Fatal("open session must have nil working hours")
	}

	out := in.Add(9 * time.Hour)
	event, err = engine.CheckInOrOut("EMP001", out)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if event.Status != StatusCheckedOut {
		t.Fatalf("second call status = %q, want %q", event.Status, StatusCheckedOut)
	}
	if event.Record.WorkingHours == nil || *event.Record.WorkingHours != 8 {
		t.Fatalf("working hours = %v, want 8", event.Record.WorkingHours)
	}
	if *event.Record.OvertimeHours != 0 {
		t.Fatalf("overtime = %v, want 0", *event.Record.OvertimeHours)
	}
}

func TestCheckUnknownEmployee(t *testing.T) {
	t.Parallel()

	engine := NewEngine(newFakeStore(), testConfig())
	_, err := engine.CheckInOrOut("EMP999", time.Now())
	if !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestConcurrentChecksSerialize(t *testing.T) {
	t.Parallel()

	store := newFakeStore("EMP001")
	engine := NewEngine(store, testConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			event, err := engine.CheckInOrOut("EMP001", now.Add(time.Duration(i)*time.Second))
			if err != nil {
				t.Errorf("call %d: %v", i, err)
				return
			}
			results[i] = event.Status
		}(i)
	}
	wg.Wait()

	// One call checks in, the other checks out; never two open sessions.
	if !(results[0] == StatusCheckedIn && results[1] == StatusCheckedOut) &&
		!(results[0] == StatusCheckedOut && results[1] == StatusCheckedIn) {
		t.Fatalf("want one check-in and one check-out, got %v", results)
	}

	open := 0
	for _, r := range store.attendance {
		if r.CheckOut == nil {
			open++
		}
	}
	if open != 0 {
		t.Fatalf("open sessions after both calls = %d, want 0", open)
	}
}

func TestApplyLeaveDuplicate(t *testing.T) {
	t.Parallel()

	store := newFakeStore("INT001")
	engine := NewEngine(store, testConfig())
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	if _, err := engine.ApplyLeave("INT001", day, "sick"); err != nil {
		t.Fatalf("first leave: %v", err)
	}
	_, err := engine.ApplyLeave("INT001", day, "still sick")
	if !apperr.IsDuplicate(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}

	// A different day is fine.
	if _, err := engine.ApplyLeave("INT001", day.AddDate(0, 0, 1), "sick"); err != nil {
		t.Fatalf("leave on another day: %v", err)
	}
}

func TestRecordLoginIdempotentPerDay(t *testing.T) {
	t.Parallel()

	store := newFakeStore("EMP001")
	engine := NewEngine(store, testConfig())
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	first, err := engine.RecordLogin("EMP001", now)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := engine.RecordLogin("EMP001", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("second login the same day must return the existing row")
	}
	if !second.LoginTime.Equal(now) {
		t.Fatal("login time must not change on repeat login")
	}
	if len(store.logins) != 1 {
		t.Fatalf("login rows = %d, want 1", len(store.logins))
	}
}

func TestRecordLogout(t *testing.T) {
	t.Parallel()

	store := newFakeStore("EMP001")
	engine := NewEngine(store, testConfig())
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// Logout without login fails.
	if _, err := engine.RecordLogout("EMP001", now); !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}

	if _, err := engine.RecordLogin("EMP001", now); err != nil {
		t.Fatalf("login: %v", err)
	}
	record, err := engine.RecordLogout("EMP001", now.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if record.LogoutTime == nil {
		t.Fatal("logout time not set")
	}

	// Logging out twice the same day is a conflict.
	if _, err := engine.RecordLogout("EMP001", now.Add(9*time.Hour)); !apperr.IsDuplicate(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}
}
