package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/attendance-backend/internal/attendance"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

type recordKey struct {
	session uuid.UUID
	student int
}

// fakeAttendanceStore keeps records in a map and mimics the database's
// unique constraint on (session, student).
type fakeAttendanceStore struct {
	records map[recordKey]*model.AttendanceRecord
	nextID  int
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: make(map[recordKey]*model.AttendanceRecord)}
}

func (f *fakeAttendanceStore) GetRecord(_ context.Context, sessionID uuid.UUID, studentID int) (*model.AttendanceRecord, error) {
	if rec, ok := f.records[recordKey{sessionID, studentID}]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceStore) InsertRecord(_ context.Context, rec *model.AttendanceRecord) error {
	key := recordKey{rec.AttendanceSessionID, rec.StudentID}
	if _, ok := f.records[key]; ok {
		return repository.ErrDuplicateRecord
	}
	f.nextID++
	rec.ID = f.nextID
	cp := *rec
	f.records[key] = &cp
	return nil
}

func (f *fakeAttendanceStore) InsertAbsentIfMissing(_ context.Context, rec *model.AttendanceRecord) (bool, error) {
	key := recordKey{rec.AttendanceSessionID, rec.StudentID}
	if _, ok := f.records[key]; ok {
		return false, nil
	}
	f.nextID++
	rec.ID = f.nextID
	cp := *rec
	f.records[key] = &cp
	return true, nil
}

func (f *fakeAttendanceStore) RecordedStudentIDs(_ context.Context, sessionID uuid.UUID) (map[int]struct{}, error) {
	recorded := make(map[int]struct{})
	for key := range f.records {
		if key.session == sessionID {
			recorded[key.student] = struct{}{}
		}
	}
	return recorded, nil
}

func (f *fakeAttendanceStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for key, rec := range f.records {
		if key.session == sessionID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) CountByStatus(_ context.Context, sessionID uuid.UUID) (map[model.AttendanceStatus]int, error) {
	counts := make(map[model.AttendanceStatus]int)
	for key, rec := range f.records {
		if key.session == sessionID {
			counts[rec.Status]++
		}
	}
	return counts, nil
}

type fakeRoster struct{ students []model.Student }

func (f *fakeRoster) ListBySection(context.Context, int) ([]model.Student, error) {
	return f.students, nil
}

type fakeSchedules struct{ sched *model.ClassSession }

func (f *fakeSchedules) GetByID(context.Context, int) (*model.ClassSession, error) {
	if f.sched == nil {
		return nil, errors.New("no rows")
	}
	return f.sched, nil
}

func (f *fakeSchedules) FindForSectionOnDay(context.Context, int, string) (*model.ClassSession, error) {
	return f.sched, nil
}

type fakeShifts struct {
	open   map[int]bool
	opened int
}

func (f *fakeShifts) Get(_ context.Context, classSessionID int, _ time.Time) (*model.ShiftState, error) {
	if f.open == nil || !f.open[classSessionID] {
		return nil, nil
	}
	return &model.ShiftState{ClassSessionID: classSessionID, IsActive: true}, nil
}

func (f *fakeShifts) Open(_ context.Context, classSessionID, professorID int, date time.Time) (*model.ShiftState, error) {
	if f.open == nil {
		f.open = make(map[int]bool)
	}
	f.open[classSessionID] = true
	f.opened++
	return &model.ShiftState{ClassSessionID: classSessionID, ProfessorID: professorID, SessionDate: date, IsActive: true}, nil
}

func (f *fakeShifts) Close(_ context.Context, classSessionID int, _ time.Time) error {
	if f.open != nil {
		f.open[classSessionID] = false
	}
	return nil
}

// monday returns a clock instant on Monday 2026-03-09.
func monday(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func roster(ids ...int) []model.Student {
	students := make([]model.Student, 0, len(ids))
	for _, id := range ids {
		students = append(students, model.Student{ID: id})
	}
	return students
}

func mondaySchedule() *model.ClassSession {
	return &model.ClassSession{ID: 1, SectionID: 7, ProfessorID: 3, DayOfWeek: "Monday", StartTime: "08:00", EndTime: "10:00"}
}

func newTestService(store *fakeAttendanceStore, students []model.Student, sched *model.ClassSession, at time.Time) *AttendanceService {
	svc := NewAttendanceService(store, &fakeRoster{students: students}, &fakeSchedules{sched: sched}, &fakeShifts{},
		attendance.Policy{OnTimeWindow: 20 * time.Minute, LockDelay: 30 * time.Minute})
	svc.now = func() time.Time { return at }
	return svc
}

func TestRecordCheckInOnTime(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := newTestService(store, roster(1), mondaySchedule(), monday(8, 10))

	res, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil)
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if res.AlreadyMarked {
		t.Fatal("first check-in reported as already marked")
	}
	if res.Record.Status != model.StatusPresent {
		t.Fatalf("status = %q, want present", res.Record.Status)
	}
}

func TestRecordCheckInLate(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := newTestService(store, roster(1), mondaySchedule(), monday(8, 25))

	res, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil)
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if res.Record.Status != model.StatusLate {
		t.Fatalf("status = %q, want late", res.Record.Status)
	}
}

func TestRecordCheckInIdempotent(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := newTestService(store, roster(1), mondaySchedule(), monday(8, 5))

	first, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil)
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	second, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil)
	if err != nil {
		t.Fatalf("second check-in: %v", err)
	}
	if !second.AlreadyMarked {
		t.Fatal("second check-in not reported as already marked")
	}
	if second.Record.ID != first.Record.ID {
		t.Fatalf("second check-in returned record %d, want %d", second.Record.ID, first.Record.ID)
	}
	if second.Record.Status != first.Record.Status {
		t.Fatalf("status changed from %q to %q", first.Record.Status, second.Record.Status)
	}
}

func TestRecordCheckInAfterLockSweeps(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := newTestService(store, roster(1, 2, 3), mondaySchedule(), monday(9, 0))

	_, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil)
	if !errors.Is(err, ErrAttendanceLocked) {
		t.Fatalf("err = %v, want ErrAttendanceLocked", err)
	}

	// The refused check-in triggered the sweep: the whole roster is absent.
	sessionID := attendance.SessionID(7, monday(9, 0))
	counts, _ := store.CountByStatus(context.Background(), sessionID)
	if counts[model.StatusAbsent] != 3 {
		t.Fatalf("absent = %d, want 3", counts[model.StatusAbsent])
	}
}

func TestRecordCheckInNoScheduleToday(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := newTestService(store, roster(1), nil, monday(23, 0))

	res, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil)
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if res.Record.Status != model.StatusPresent {
		t.Fatalf("status = %q, want present without schedule", res.Record.Status)
	}
}

func TestSweepMarksOnlyMissing(t *testing.T) {
	store := newFakeAttendanceStore()
	at := monday(9, 0)
	svc := newTestService(store, roster(1, 2, 3, 4, 5), mondaySchedule(), at)

	sessionID := attendance.SessionID(7, at)
	for _, id := range []int{1, 2, 3} {
		if err := store.InsertRecord(context.Background(), &model.AttendanceRecord{
			AttendanceSessionID: sessionID, StudentID: id, SectionID: 7,
			Status: model.StatusPresent, CheckedInAt: at,
		}); err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}

	result, err := svc.SweepAbsences(context.Background(), 7)
	if err != nil {
		t.Fatalf("SweepAbsences: %v", err)
	}
	if result.Intended != 2 || result.Marked != 2 {
		t.Fatalf("intended=%d marked=%d, want 2/2", result.Intended, result.Marked)
	}

	// Existing statuses survive the sweep.
	rec, _ := store.GetRecord(context.Background(), sessionID, 1)
	if rec.Status != model.StatusPresent {
		t.Fatalf("present record flipped to %q", rec.Status)
	}
	absent, _ := store.GetRecord(context.Background(), sessionID, 4)
	if absent.Status != model.StatusAbsent {
		t.Fatalf("missing student marked %q, want absent", absent.Status)
	}
	if absent.Notes == nil || *absent.Notes != model.AbsentSweepNote {
		t.Fatal("sweep note missing on auto-marked record")
	}
}

func TestSweepIsRerunnable(t *testing.T) {
	store := newFakeAttendanceStore()
	svc := newTestService(store, roster(1, 2), mondaySchedule(), monday(9, 0))

	first, err := svc.SweepAbsences(context.Background(), 7)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if first.Marked != 2 {
		t.Fatalf("first sweep marked %d, want 2", first.Marked)
	}

	second, err := svc.SweepAbsences(context.Background(), 7)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if second.Intended != 0 || second.Marked != 0 {
		t.Fatalf("second sweep intended=%d marked=%d, want 0/0", second.Intended, second.Marked)
	}
}

func TestTodayStats(t *testing.T) {
	store := newFakeAttendanceStore()
	at := monday(8, 10)
	svc := newTestService(store, roster(1, 2, 3, 4), mondaySchedule(), at)

	if _, err := svc.RecordCheckIn(context.Background(), 7, 1, nil, nil); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	svc.now = func() time.Time { return monday(8, 25) }
	if _, err := svc.RecordCheckIn(context.Background(), 7, 2, nil, nil); err != nil {
		t.Fatalf("late check-in: %v", err)
	}

	stats, err := svc.TodayStats(context.Background(), 7)
	if err != nil {
		t.Fatalf("TodayStats: %v", err)
	}
	if stats.Present != 1 || stats.Late != 1 || stats.Absent != 0 || stats.Enrolled != 4 {
		t.Fatalf("stats = %+v, want 1 present, 1 late, 0 absent, 4 enrolled", stats)
	}
}

func TestOpenShiftOwnership(t *testing.T) {
	svc := newTestService(newFakeAttendanceStore(), nil, mondaySchedule(), monday(7, 55))

	if _, err := svc.OpenShift(context.Background(), 99, 1); !errors.Is(err, ErrNotScheduleOwner) {
		t.Fatalf("foreign professor: err = %v, want ErrNotScheduleOwner", err)
	}
	shift, err := svc.OpenShift(context.Background(), 3, 1)
	if err != nil {
		t.Fatalf("owner open: %v", err)
	}
	if !shift.IsActive {
		t.Fatal("opened shift not active")
	}
	if err := svc.CloseShift(context.Background(), 3, 1); err != nil {
		t.Fatalf("owner close: %v", err)
	}
}
