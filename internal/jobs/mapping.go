package jobs

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/pkg/repository"
)

const columns = `id, status, result_id, error, ad_name, requested_by, created_at, updated_at`

func scanJob(s repository.Scanner) (Job, error) {
	var (
		j        Job
		resultID uuid.NullUUID
	)
	err := s.Scan(
		&j.ID, &j.Status, &resultID, &j.Error,
		&j.AdName, &j.RequestedBy, &j.CreatedAt, &j.UpdatedAt,
	)
	if resultID.Valid {
		j.ResultID = &resultID.UUID
	}
	return j, err
}
