package roster

import "context"

// Repository describes staging persistence needs from use cases.
type Repository interface {
	CreateRecruits(ctx context.Context, recruits []Recruit) ([]int64, error)
	ListRecruits(ctx context.Context, teamID, seasonID int64, status CommitStatus) ([]Recruit, error)
	ListCommittedRecruitsBySeason(ctx context.Context, seasonID int64) ([]Recruit, error)

	CreateTransfers(ctx context.Context, transfers []Transfer) ([]int64, error)
	ListTransfers(ctx context.Context, teamID, seasonID int64, status CommitStatus) ([]Transfer, error)
	ListCommittedTransfersBySeason(ctx context.Context, seasonID int64) ([]Transfer, error)
}
