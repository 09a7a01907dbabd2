package complaint

import "context"

// Store persists complaints and answers the aggregate queries behind the
// admin report. Implementations return ErrNotFound when an id does not
// resolve.
type Store interface {
	Create(ctx context.Context, c *Complaint) error
	Find(ctx context.Context, id string) (*Complaint, error)
	List(ctx context.Context) ([]*Complaint, error)
	Update(ctx context.Context, c *Complaint) error
	Delete(ctx context.Context, id string) error

	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) ([]Bucket, error)
	CountByDepartment(ctx context.Context) ([]Bucket, error)
	CountByPriority(ctx context.Context) ([]Bucket, error)
	// TopOwners returns up to limit owners ordered by complaint count
	// descending, owner id ascending on ties.
	TopOwners(ctx context.Context, limit int) ([]OwnerCount, error)
}
