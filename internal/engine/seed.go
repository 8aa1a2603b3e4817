package engine

import (
	"context"
	"fmt"
	"time"
)

// Seed populates the store with a small demo dataset for the owner: a
// reading goal, a running goal, and one binary task. Intended for fresh
// stores; seeding twice duplicates the data.
func (s *Service) Seed(ctx context.Context, ownerID string) error {
	now := time.Now()
	yearOut := now.AddDate(1, 0, 0)
	weekOut := now.AddDate(0, 0, 7)

	reading, err := s.CreateTask(ctx, CreateTaskInput{
		Title:       "Read 10 books",
		Description: strPtr("A year-long reading challenge"),
		Kind:        KindContainer,
		Deadline:    &yearOut,
	}, ownerID)
	if err != nil {
		return fmt.Errorf("seed reading goal: %w", err)
	}
	if _, err := s.UpdateTask(ctx, reading.ID, UpdateTaskInput{Status: Set(StatusInProgress)}); err != nil {
		return err
	}

	books := []struct {
		title string
		pages float64
	}{
		{"Crime and Punishment", 500},
		{"1984", 328},
		{"The Master and Margarita", 480},
		{"The Little Prince", 96},
		{"Pride and Prejudice", 432},
	}
	for i, book := range books {
		pages := book.pages
		leaf, err := s.CreateTask(ctx, CreateTaskInput{
			Title:       book.title,
			Description: strPtr(fmt.Sprintf("Read %.0f pages", book.pages)),
			ParentID:    &reading.ID,
			Kind:        KindLeaf,
			Unit:        strPtr("pages"),
			TargetValue: &pages,
		}, ownerID)
		if err != nil {
			return fmt.Errorf("seed book %q: %w", book.title, err)
		}
		switch {
		case i < 2:
			if _, err := s.UpdateTask(ctx, leaf.ID, UpdateTaskInput{Status: Set(StatusCompleted)}); err != nil {
				return err
			}
			if _, err := s.AddProgress(ctx, leaf.ID, AddProgressInput{Value: book.pages, Note: strPtr("Finished")}); err != nil {
				return err
			}
		case i == 2:
			if _, err := s.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 120, Note: strPtr("Started reading")}); err != nil {
				return err
			}
			if _, err := s.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 80, Note: strPtr("Kept going")}); err != nil {
				return err
			}
		}
	}

	running, err := s.CreateTask(ctx, CreateTaskInput{
		Title:       "Run 500 km",
		Description: strPtr("Yearly running goal"),
		Kind:        KindContainer,
		Deadline:    &yearOut,
	}, ownerID)
	if err != nil {
		return fmt.Errorf("seed running goal: %w", err)
	}
	if _, err := s.UpdateTask(ctx, running.ID, UpdateTaskInput{Status: Set(StatusInProgress)}); err != nil {
		return err
	}

	months := []struct {
		name string
		km   float64
	}{
		{"January", 40},
		{"February", 45},
		{"March", 50},
		{"April", 55},
	}
	for i, m := range months {
		km := m.km
		due := now.AddDate(0, 0, i*30)
		leaf, err := s.CreateTask(ctx, CreateTaskInput{
			Title:       fmt.Sprintf("%s %d", m.name, now.Year()),
			Description: strPtr(fmt.Sprintf("Run %.0f km", m.km)),
			ParentID:    &running.ID,
			Kind:        KindLeaf,
			Unit:        strPtr("km"),
			TargetValue: &km,
			Deadline:    &due,
		}, ownerID)
		if err != nil {
			return fmt.Errorf("seed month %q: %w", m.name, err)
		}
		switch {
		case i < 2:
			if _, err := s.UpdateTask(ctx, leaf.ID, UpdateTaskInput{Status: Set(StatusCompleted)}); err != nil {
				return err
			}
			if _, err := s.AddProgress(ctx, leaf.ID, AddProgressInput{Value: m.km, Note: strPtr("Done")}); err != nil {
				return err
			}
		case i == 2:
			if _, err := s.UpdateTask(ctx, leaf.ID, UpdateTaskInput{Status: Set(StatusInProgress)}); err != nil {
				return err
			}
			if _, err := s.AddProgress(ctx, leaf.ID, AddProgressInput{Value: 30, Note: strPtr("Training runs")}); err != nil {
				return err
			}
		}
	}

	if _, err := s.CreateTask(ctx, CreateTaskInput{
		Title:       "Update resume",
		Description: strPtr("Add the latest job experience"),
		Kind:        KindLeaf,
		Deadline:    &weekOut,
	}, ownerID); err != nil {
		return fmt.Errorf("seed binary task: %w", err)
	}

	return nil
}

func strPtr(s string) *string { return &s }
