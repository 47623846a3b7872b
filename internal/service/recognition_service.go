package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/facematch"
	"github.com/campuskit/attendance-backend/internal/model"
)

// Recognition errors surfaced to handlers.
var (
	ErrNoRegisteredFaces = errors.New("no registered faces in this section")
	ErrFaceNotRecognized = errors.New("face does not match any registered student")
	ErrNoSectionAssigned = errors.New("student has no section assigned")
)

// faceExtractor abstracts the inference server.
type faceExtractor interface {
	Extract(ctx context.Context, image string) (*faceclient.ExtractResult, error)
	Health(ctx context.Context) error
}

type registrationStore interface {
	GetByStudent(ctx context.Context, studentID int) (*model.FaceRegistration, error)
	ListActiveBySection(ctx context.Context, sectionID int) ([]model.FaceRegistration, error)
	Upsert(ctx context.Context, reg *model.FaceRegistration) error
	Deactivate(ctx context.Context, studentID int) error
}

type studentReader interface {
	GetByID(ctx context.Context, id int) (*model.Student, error)
}

type checkInRecorder interface {
	RecordCheckIn(ctx context.Context, sectionID, studentID int, confidence *float64, scheduleID *int) (*model.CheckInResult, error)
}

// RecognitionService runs the identify pipeline: embedding extraction via
// the inference server, nearest-neighbor matching against the section's
// enrollment pool, then check-in through the attendance reconciler.
type RecognitionService struct {
	faces      faceExtractor
	regs       registrationStore
	students   studentReader
	attendance checkInRecorder
	threshold  float64
}

// NewRecognitionService creates a new RecognitionService.
func NewRecognitionService(faces faceExtractor, regs registrationStore, students studentReader, att checkInRecorder, threshold float64) *RecognitionService {
	if threshold <= 0 {
		threshold = facematch.DefaultThreshold
	}
	return &RecognitionService{
		faces:      faces,
		regs:       regs,
		students:   students,
		attendance: att,
		threshold:  threshold,
	}
}

// IdentifyResult is the outcome of identifying one frame.
type IdentifyResult struct {
	StudentID     int                  `json:"student_id"`
	StudentNumber string               `json:"student_number"`
	FirstName     string               `json:"first_name"`
	LastName      string               `json:"last_name"`
	Confidence    float64              `json:"confidence"`
	Distance      float64              `json:"distance"`
	Similarity    float64              `json:"similarity"`
	CheckIn       *model.CheckInResult `json:"check_in,omitempty"`
}

// Identify matches one kiosk frame against a section's enrollment pool and,
// on a match, records the student's check-in.
func (s *RecognitionService) Identify(ctx context.Context, req model.IdentifyRequest) (*IdentifyResult, error) {
	extracted, err := s.faces.Extract(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	pool, err := s.loadPool(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	result, reg, err := s.match(extracted.Embedding, pool)
	if err != nil {
		return nil, err
	}

	checkIn, err := s.attendance.RecordCheckIn(ctx, req.SectionID, reg.StudentID, &result.Confidence, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("section_id", req.SectionID).
		Int("student_id", reg.StudentID).
		Float64("distance", result.BestDistance).
		Float64("confidence", result.Confidence).
		Bool("already_marked", checkIn.AlreadyMarked).
		Msg("face identified")

	return s.result(reg, result, checkIn), nil
}

// IdentifyBatch runs Identify over a burst of frames. A student appearing
// in several frames is checked in once; frames with no face or no match are
// skipped rather than failing the whole batch.
func (s *RecognitionService) IdentifyBatch(ctx context.Context, req model.BatchIdentifyRequest) ([]IdentifyResult, error) {
	pool, err := s.loadPool(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	var results []IdentifyResult
	seen := make(map[int]struct{})
	for _, image := range req.Images {
		extracted, err := s.faces.Extract(ctx, image)
		if err != nil {
			if errors.Is(err, faceclient.ErrNoFaceDetected) {
				continue
			}
			return results, err
		}

		result, reg, err := s.match(extracted.Embedding, pool)
		if err != nil {
			if errors.Is(err, ErrFaceNotRecognized) {
				continue
			}
			return results, err
		}
		if _, dup := seen[reg.StudentID]; dup {
			continue
		}
		seen[reg.StudentID] = struct{}{}

		checkIn, err := s.attendance.RecordCheckIn(ctx, req.SectionID, reg.StudentID, &result.Confidence, req.ScheduleID)
		if err != nil {
			if errors.Is(err, ErrAttendanceLocked) {
				return results, err
			}
			log.Error().Err(err).Int("student_id", reg.StudentID).Msg("batch check-in failed")
			continue
		}
		results = append(results, *s.result(reg, result, checkIn))
	}
	return results, nil
}

// RegisterFace extracts an embedding from the given image and enrolls (or
// re-enrolls) the student in the matching pool of their section.
func (s *RecognitionService) RegisterFace(ctx context.Context, studentID int, image string) (*model.FaceRegistration, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.SectionID == nil {
		return nil, ErrNoSectionAssigned
	}

	extracted, err := s.faces.Extract(ctx, image)
	if err != nil {
		return nil, err
	}

	reg := &model.FaceRegistration{
		StudentID:     student.ID,
		StudentNumber: student.StudentNumber,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		SectionID:     *student.SectionID,
		Embedding:     extracted.Embedding,
	}
	if err := s.regs.Upsert(ctx, reg); err != nil {
		return nil, err
	}

	log.Info().Int("student_id", student.ID).Int("dims", len(reg.Embedding)).Msg("face registered")
	return reg, nil
}

// RegistrationStatus returns a student's enrollment record, or nil when the
// student never registered.
func (s *RecognitionService) RegistrationStatus(ctx context.Context, studentID int) (*model.FaceRegistration, error) {
	return s.regs.GetByStudent(ctx, studentID)
}

// RemoveFace takes a student out of the matching pool without deleting
// their registration history.
func (s *RecognitionService) RemoveFace(ctx context.Context, studentID int) error {
	return s.regs.Deactivate(ctx, studentID)
}

// ServiceHealthy reports whether the inference server is reachable.
func (s *RecognitionService) ServiceHealthy(ctx context.Context) error {
	return s.faces.Health(ctx)
}

func (s *RecognitionService) loadPool(ctx context.Context, sectionID int) ([]model.FaceRegistration, error) {
	pool, err := s.regs.ListActiveBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoRegisteredFaces
	}
	return pool, nil
}

// match runs the nearest-neighbor scan and resolves the winning candidate
// back to its registration.
func (s *RecognitionService) match(probe []float64, pool []model.FaceRegistration) (facematch.Result, *model.FaceRegistration, error) {
	candidates := make([]facematch.Candidate, 0, len(pool))
	byID := make(map[string]*model.FaceRegistration, len(pool))
	for i := range pool {
		if !pool[i].HasEmbedding() {
			continue
		}
		id := strconv.Itoa(pool[i].StudentID)
		candidates = append(candidates, facematch.Candidate{ID: id, Embedding: pool[i].Embedding})
		byID[id] = &pool[i]
	}

	result, err := facematch.Match(probe, candidates, s.threshold)
	if err != nil {
		if errors.Is(err, facematch.ErrNoCandidates) {
			return facematch.Result{}, nil, ErrNoRegisteredFaces
		}
		return facematch.Result{}, nil, err
	}
	if !result.Matched {
		log.Debug().Float64("best_distance", result.BestDistance).Msg("no match within threshold")
		return facematch.Result{}, nil, ErrFaceNotRecognized
	}
	return result, byID[result.MatchedID], nil
}

func (s *RecognitionService) result(reg *model.FaceRegistration, m facematch.Result, checkIn *model.CheckInResult) *IdentifyResult {
	return &IdentifyResult{
		StudentID:     reg.StudentID,
		StudentNumber: reg.StudentNumber,
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		Confidence:    m.Confidence,
		Distance:      m.BestDistance,
		Similarity:    m.Similarity,
		CheckIn:       checkIn,
	}
}
