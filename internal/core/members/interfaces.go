package members

import "context"

// Repository defines member persistence
type Repository interface {
	Create(ctx context.Context, member *Member) (*Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
}

// Service resolves members for the transport layer
type Service interface {
	// GetMember returns the member with the given id, served from cache when possible
	GetMember(ctx context.Context, id int64) (*Member, error)

	// GetMemberByEmail looks up a member by its unique email
	GetMemberByEmail(ctx context.Context, email string) (*Member, error)

	// CreateMember provisions a new member record
	CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error)
}
