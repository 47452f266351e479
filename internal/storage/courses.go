package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lms-platform/internal/models"
)

// CourseExists проверяет, известен ли курс каталогу.
func (s *Storage) CourseExists(ctx context.Context, courseID string) (bool, error) {
	const op = "storage.CourseExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE course_id = $1)`
	if err := s.pool.QueryRow(ctx, query, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// FindCourseModeWithSKU возвращает режим курса по умолчанию с непустым
// SKU или ErrNotFound, если такого режима у курса нет. Платные режимы
// помимо режима по умолчанию покупку не запускают.
func (s *Storage) FindCourseModeWithSKU(ctx context.Context, courseID string) (*models.CourseMode, error) {
	const op = "storage.FindCourseModeWithSKU"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT course_id, mode_slug, sku
			  FROM course_modes
			  WHERE course_id = $1 AND mode_slug = $2 AND sku IS NOT NULL`
	mode := &models.CourseMode{}
	row := s.pool.QueryRow(ctx, query, courseID, models.DefaultModeSlug)
	if err := row.Scan(&mode.CourseID, &mode.ModeSlug, &mode.SKU); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return mode, nil
}

// Enroll записывает пользователя на курс. Повторная запись
// реактивирует существующую.
func (s *Storage) Enroll(ctx context.Context, username, courseID, mode string) error {
	const op = "storage.Enroll"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollments (username, course_id, mode, is_active)
			  VALUES ($1, $2, $3, TRUE)
			  ON CONFLICT (username, course_id)
			  DO UPDATE SET mode = EXCLUDED.mode, is_active = TRUE`
	if _, err := s.pool.Exec(ctx, query, username, courseID, mode); err != nil {
		return fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return nil
}

// IsEnrolled проверяет наличие активной записи пользователя на курс.
func (s *Storage) IsEnrolled(ctx context.Context, username, courseID string) (bool, error) {
	const op = "storage.IsEnrolled"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var enrolled bool
	query := `SELECT EXISTS(SELECT 1 FROM enrollments
			  WHERE username = $1 AND course_id = $2 AND is_active)`
	if err := s.pool.QueryRow(ctx, query, username, courseID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return enrolled, nil
}
