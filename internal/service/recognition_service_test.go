package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/model"
)

// fakeExtractor maps image strings to canned embeddings.
type fakeExtractor struct {
	embeddings map[string][]float64
}

func (f *fakeExtractor) Extract(_ context.Context, image string) (*faceclient.ExtractResult, error) {
	emb, ok := f.embeddings[image]
	if !ok {
		return nil, faceclient.ErrNoFaceDetected
	}
	return &faceclient.ExtractResult{Embedding: emb, FacesDetected: 1}, nil
}

func (f *fakeExtractor) Health(context.Context) error { return nil }

type fakeRegStore struct {
	pool   []model.FaceRegistration
	byID   map[int]*model.FaceRegistration
	upsert []model.FaceRegistration
}

func (f *fakeRegStore) GetByStudent(_ context.Context, studentID int) (*model.FaceRegistration, error) {
	return f.byID[studentID], nil
}

func (f *fakeRegStore) ListActiveBySection(context.Context, int) ([]model.FaceRegistration, error) {
	return f.pool, nil
}

func (f *fakeRegStore) Upsert(_ context.Context, reg *model.FaceRegistration) error {
	f.upsert = append(f.upsert, *reg)
	return nil
}

func (f *fakeRegStore) Deactivate(context.Context, int) error { return nil }

type fakeStudents struct{ student *model.Student }

func (f *fakeStudents) GetByID(context.Context, int) (*model.Student, error) {
	if f.student == nil {
		return nil, errors.New("no rows")
	}
	return f.student, nil
}

// fakeRecorder logs check-in calls and fabricates a fresh record per call.
type fakeRecorder struct {
	calls []int
	err   error
}

func (f *fakeRecorder) RecordCheckIn(_ context.Context, sectionID, studentID int, confidence *float64, _ *int) (*model.CheckInResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, studentID)
	return &model.CheckInResult{
		Record: &model.AttendanceRecord{
			StudentID:       studentID,
			SectionID:       sectionID,
			Status:          model.StatusPresent,
			MatchConfidence: confidence,
		},
	}, nil
}

func enrolled(studentID int, embedding []float64) model.FaceRegistration {
	return model.FaceRegistration{
		StudentID: studentID,
		Embedding: embedding,
		IsActive:  true,
	}
}

func TestIdentifyMatchChecksIn(t *testing.T) {
	extractor := &fakeExtractor{embeddings: map[string][]float64{
		"frame-alice": {1, 0, 0},
	}}
	regs := &fakeRegStore{pool: []model.FaceRegistration{
		enrolled(1, []float64{1, 0, 0.1}),
		enrolled(2, []float64{0, 1, 0}),
	}}
	recorder := &fakeRecorder{}
	svc := NewRecognitionService(extractor, regs, &fakeStudents{}, recorder, 0.6)

	res, err := svc.Identify(context.Background(), model.IdentifyRequest{SectionID: 7, Image: "frame-alice"})
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if res.StudentID != 1 {
		t.Fatalf("matched student %d, want 1", res.StudentID)
	}
	if res.Confidence <= 0 || res.Confidence >= 1 {
		t.Fatalf("confidence = %v, want in (0,1)", res.Confidence)
	}
	if len(recorder.calls) != 1 || recorder.calls[0] != 1 {
		t.Fatalf("check-in calls = %v, want [1]", recorder.calls)
	}
}

func TestIdentifyNoMatch(t *testing.T) {
	extractor := &fakeExtractor{embeddings: map[string][]float64{
		"frame-stranger": {0, 0, 5},
	}}
	regs := &fakeRegStore{pool: []model.FaceRegistration{
		enrolled(1, []float64{1, 0, 0}),
	}}
	recorder := &fakeRecorder{}
	svc := NewRecognitionService(extractor, regs, &fakeStudents{}, recorder, 0.6)

	_, err := svc.Identify(context.Background(), model.IdentifyRequest{SectionID: 7, Image: "frame-stranger"})
	if !errors.Is(err, ErrFaceNotRecognized) {
		t.Fatalf("err = %v, want ErrFaceNotRecognized", err)
	}
	if len(recorder.calls) != 0 {
		t.Fatal("no-match still triggered a check-in")
	}
}

func TestIdentifyEmptyPool(t *testing.T) {
	extractor := &fakeExtractor{embeddings: map[string][]float64{"f": {1, 0}}}
	svc := NewRecognitionService(extractor, &fakeRegStore{}, &fakeStudents{}, &fakeRecorder{}, 0.6)

	_, err := svc.Identify(context.Background(), model.IdentifyRequest{SectionID: 7, Image: "f"})
	if !errors.Is(err, ErrNoRegisteredFaces) {
		t.Fatalf("err = %v, want ErrNoRegisteredFaces", err)
	}
}

func TestIdentifyBatchDeduplicates(t *testing.T) {
	extractor := &fakeExtractor{embeddings: map[string][]float64{
		"f1": {1, 0, 0},
		"f2": {1, 0, 0.05}, // same student, second frame
		"f3": {0, 1, 0},
	}}
	regs := &fakeRegStore{pool: []model.FaceRegistration{
		enrolled(1, []float64{1, 0, 0}),
		enrolled(2, []float64{0, 1, 0}),
	}}
	recorder := &fakeRecorder{}
	svc := NewRecognitionService(extractor, regs, &fakeStudents{}, recorder, 0.6)

	results, err := svc.IdentifyBatch(context.Background(), model.BatchIdentifyRequest{
		SectionID: 7,
		Images:    []string{"f1", "f2", "no-face", "f3"},
	})
	if err != nil {
		t.Fatalf("IdentifyBatch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 distinct students", len(results))
	}
	if len(recorder.calls) != 2 {
		t.Fatalf("check-in calls = %v, want one per student", recorder.calls)
	}
}

func TestIdentifyBatchStopsAtLock(t *testing.T) {
	extractor := &fakeExtractor{embeddings: map[string][]float64{"f1": {1, 0}}}
	regs := &fakeRegStore{pool: []model.FaceRegistration{enrolled(1, []float64{1, 0})}}
	svc := NewRecognitionService(extractor, regs, &fakeStudents{}, &fakeRecorder{err: ErrAttendanceLocked}, 0.6)

	_, err := svc.IdentifyBatch(context.Background(), model.BatchIdentifyRequest{SectionID: 7, Images: []string{"f1"}})
	if !errors.Is(err, ErrAttendanceLocked) {
		t.Fatalf("err = %v, want ErrAttendanceLocked", err)
	}
}

func TestRegisterFace(t *testing.T) {
	section := 7
	extractor := &fakeExtractor{embeddings: map[string][]float64{"selfie": {0.5, 0.5}}}
	regs := &fakeRegStore{}
	students := &fakeStudents{student: &model.Student{
		ID: 1, StudentNumber: "S100", FirstName: "Ada", LastName: "Lovelace", SectionID: &section,
	}}
	svc := NewRecognitionService(extractor, regs, students, &fakeRecorder{}, 0.6)

	reg, err := svc.RegisterFace(context.Background(), 1, "selfie")
	if err != nil {
		t.Fatalf("RegisterFace: %v", err)
	}
	if !reg.HasEmbedding() {
		t.Fatal("registration stored without embedding")
	}
	if len(regs.upsert) != 1 || regs.upsert[0].SectionID != section {
		t.Fatalf("upsert = %+v, want one registration in section %d", regs.upsert, section)
	}
}

func TestRegisterFaceRequiresSection(t *testing.T) {
	extractor := &fakeExtractor{embeddings: map[string][]float64{"selfie": {1}}}
	students := &fakeStudents{student: &model.Student{ID: 1}}
	svc := NewRecognitionService(extractor, &fakeRegStore{}, students, &fakeRecorder{}, 0.6)

	_, err := svc.RegisterFace(context.Background(), 1, "selfie")
	if !errors.Is(err, ErrNoSectionAssigned) {
		t.Fatalf("err = %v, want ErrNoSectionAssigned", err)
	}
}
