package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/attendance-backend/internal/config"
	"github.com/campuskit/attendance-backend/internal/database"
	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/logger"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
	"github.com/campuskit/attendance-backend/internal/service"
)

// Seeds one demo section with a weekly schedule, a professor, and 20
// student accounts. Safe to re-run: existing rows are reported and skipped.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	studentRepo := repository.NewStudentRepository(pool)
	professorRepo := repository.NewProfessorRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	classSessionRepo := repository.NewClassSessionRepository(pool)

	faceClient := faceclient.New(cfg.FaceServiceURL, cfg.FaceServiceTimeout)

	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo, authService)
	facultyService := service.NewFacultyService(professorRepo, authService, faceClient,
		repository.NewProfessorFaceRepository(pool), cfg.MatchThreshold)
	sectionService := service.NewSectionService(sectionRepo, studentRepo, repository.NewFaceRegistrationRepository(pool))
	scheduleService := service.NewScheduleService(classSessionRepo)

	fmt.Println("=== Seeding Demo Data ===")

	// Section
	var sectionID int
	err = pool.QueryRow(ctx, `SELECT id FROM sections WHERE section_code = $1`, "CS101-A").Scan(&sectionID)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Fatal().Err(err).Msg("Failed to check existing section")
		}
		section, err := sectionService.Create(ctx, model.CreateSectionRequest{
			SectionCode:  "CS101-A",
			CourseName:   "Introduction to Computer Science",
			Semester:     "Fall",
			AcademicYear: "2026-2027",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create section")
		}
		sectionID = section.ID
		fmt.Printf("Created section CS101-A with ID: %d\n", sectionID)
	} else {
		fmt.Printf("Found existing section CS101-A with ID: %d\n", sectionID)
	}

	// Professor
	var professorID int
	err = pool.QueryRow(ctx, `SELECT id FROM professors WHERE email = $1`, "e.dijkstra@example.edu").Scan(&professorID)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Fatal().Err(err).Msg("Failed to check existing professor")
		}
		dept := "Computer Science"
		professor, err := facultyService.Create(ctx, model.CreateProfessorRequest{
			EmployeeID: "EMP001",
			FirstName:  "Edsger",
			LastName:   "Dijkstra",
			Email:      "e.dijkstra@example.edu",
			Department: &dept,
			Password:   "professor123",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create professor")
		}
		professorID = professor.ID
		fmt.Printf("Created professor with ID: %d\n", professorID)
	} else {
		fmt.Printf("Found existing professor with ID: %d\n", professorID)
	}

	// Weekly schedule: Monday and Wednesday mornings.
	for _, day := range []string{"Monday", "Wednesday"} {
		_, err := scheduleService.Create(ctx, model.CreateClassSessionRequest{
			SectionID:   sectionID,
			ProfessorID: professorID,
			Room:        "B-204",
			DayOfWeek:   day,
			StartTime:   "08:00",
			EndTime:     "10:00",
			MaxCapacity: 40,
		})
		if err != nil {
			fmt.Printf("Schedule for %s not created: %v\n", day, err)
		} else {
			fmt.Printf("Created %s 08:00 schedule\n", day)
		}
	}

	names := [][2]string{
		{"Ada", "Lovelace"}, {"Alan", "Turing"}, {"Grace", "Hopper"}, {"Donald", "Knuth"},
		{"Barbara", "Liskov"}, {"Edgar", "Codd"}, {"Frances", "Allen"}, {"John", "Backus"},
		{"Ken", "Thompson"}, {"Dennis", "Ritchie"}, {"Margaret", "Hamilton"}, {"Tim", "Berners-Lee"},
		{"Radia", "Perlman"}, {"Vint", "Cerf"}, {"Katherine", "Johnson"}, {"Linus", "Torvalds"},
		{"Shafi", "Goldwasser"}, {"Tony", "Hoare"}, {"Hedy", "Lamarr"}, {"Claude", "Shannon"},
	}

	successCount := 0
	for i, name := range names {
		number := fmt.Sprintf("S%04d", i+1)
		_, err := studentService.Create(ctx, model.CreateStudentRequest{
			StudentNumber: number,
			FirstName:     name[0],
			LastName:      name[1],
			Email:         fmt.Sprintf("%s%d@example.edu", name[0], i+1),
			Password:      "student123",
			SectionID:     &sectionID,
		})
		if err != nil {
			fmt.Printf("Error creating student %s %s (%s): %v\n", name[0], name[1], number, err)
		} else {
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
