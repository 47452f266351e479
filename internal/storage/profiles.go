package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lms-platform/internal/models"
)

// GetProfile возвращает профиль пользователя.
func (s *Storage) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, full_name, gender, year_of_birth, language, goals,
			      level_of_education, mailing_address, country
			  FROM profiles
			  WHERE username = $1`
	p := &models.Profile{}
	row := s.pool.QueryRow(ctx, query, username)
	if err := row.Scan(&p.Username, &p.FullName, &p.Gender, &p.YearOfBirth, &p.Language,
		&p.Goals, &p.LevelOfEducation, &p.MailingAddress, &p.Country); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return p, nil
}

// UpdateProfile перезаписывает демографические поля профиля.
func (s *Storage) UpdateProfile(ctx context.Context, p models.Profile) error {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE profiles
			  SET full_name = $1, gender = $2, year_of_birth = $3, language = $4,
			      goals = $5, level_of_education = $6, mailing_address = $7, country = $8
			  WHERE username = $9`
	commandTag, err := s.pool.Exec(ctx, query, p.FullName, p.Gender, p.YearOfBirth,
		p.Language, p.Goals, p.LevelOfEducation, p.MailingAddress, p.Country, p.Username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
