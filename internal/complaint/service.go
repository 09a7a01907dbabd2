package complaint

import (
	"context"
	"fmt"
	"strings"
	"time"

	"complainthub.org/internal/activity"
	"complainthub.org/internal/auth"
	"complainthub.org/internal/ids"
	"complainthub.org/internal/obs"
	"complainthub.org/internal/stream"
)

// CreateInput carries the caller-controlled fields of a new complaint.
// Status and owner are never taken from the request.
type CreateInput struct {
	Title       string
	Description string
	Department  string
	Priority    string
}

// Update is the allow-list of mutable complaint fields. A nil pointer leaves
// the field untouched. Owner and creation time are deliberately absent.
type Update struct {
	Title       *string
	Description *string
	Department  *string
	Priority    *string
	Status      *string
}

// Service implements complaint CRUD on top of a Store. Creation and status
// changes are recorded in the activity log and published to the live event
// stream; both are best-effort once the store write has committed.
type Service struct {
	store    Store
	users    auth.UserStore
	activity *activity.Log
	events   *stream.Stream
	now      func() time.Time
}

// NewService constructs the complaint service.
func NewService(store Store, users auth.UserStore, log *activity.Log, events *stream.Stream) *Service {
	return &Service{
		store:    store,
		users:    users,
		activity: log,
		events:   events,
		now:      time.Now,
	}
}

// Create files a new complaint owned by the caller. Priority defaults to
// medium; status always starts Pending.
func (s *Service) Create(ctx context.Context, identity auth.Identity, in CreateInput) (*Complaint, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	department := strings.TrimSpace(in.Department)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if department == "" {
		return nil, fmt.Errorf("%w: department is required", ErrInvalidInput)
	}
	priority := strings.TrimSpace(in.Priority)
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}

	c := &Complaint{
		ID:          ids.New(),
		Title:       title,
		Description: description,
		Department:  department,
		Priority:    priority,
		Status:      StatusPending,
		OwnerID:     identity.ID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("%s (%s priority) by user %s", c.Title, c.Priority, identity.Username)
	s.record(activity.EventComplaintCreated, detail, c.ID)
	return c, nil
}

// List returns every complaint with its owner expanded to username and email.
// Filtering "my complaints" from "all complaints" is a client concern.
func (s *Service) List(ctx context.Context) ([]WithOwner, error) {
	complaints, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(complaints))
	seen := make(map[string]struct{}, len(complaints))
	for _, c := range complaints {
		if _, ok := seen[c.OwnerID]; !ok {
			seen[c.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, c.OwnerID)
		}
	}
	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]WithOwner, 0, len(complaints))
	for _, c := range complaints {
		ref := OwnerRef{ID: c.OwnerID}
		if u, ok := owners[c.OwnerID]; ok {
			ref.Username = u.Username
			ref.Email = u.Email
		}
		out = append(out, WithOwner{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Department:  c.Department,
			Priority:    c.Priority,
			Status:      c.Status,
			Owner:       ref,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out, nil
}

// Update merges the allow-listed fields into the complaint. Any authenticated
// caller may update any complaint; ownership is not checked. A status change
// appends exactly one STATUS UPDATE entry.
func (s *Service) Update(ctx context.Context, id string, upd Update) (*Complaint, error) {
	c, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	prevStatus := c.Status

	if upd.Title != nil {
		v := strings.TrimSpace(*upd.Title)
		if v == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		c.Title = v
	}
	if upd.Description != nil {
		v := strings.TrimSpace(*upd.Description)
		if v == "" {
			return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
		}
		c.Description = v
	}
	if upd.Department != nil {
		v := strings.TrimSpace(*upd.Department)
		if v == "" {
			return nil, fmt.Errorf("%w: department is required", ErrInvalidInput)
		}
		c.Department = v
	}
	if upd.Priority != nil {
		if !ValidPriority(*upd.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *upd.Priority)
		}
		c.Priority = *upd.Priority
	}
	if upd.Status != nil {
		if !ValidStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *upd.Status)
		}
		c.Status = *upd.Status
	}

	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}

	if c.Status != prevStatus {
		detail := fmt.Sprintf("Complaint %s status changed from %s to %s", c.ID, prevStatus, c.Status)
		s.record(activity.EventStatusUpdate, detail, c.ID)
	}
	return c, nil
}

// Delete removes the complaint by id. No activity entry is emitted.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// record appends to the activity log and publishes a live event. Failures do
// not surface to the caller: the store write already committed.
func (s *Service) record(event activity.Event, detail, complaintID string) {
	if err := s.activity.Append(event, detail); err != nil {
		// Keep serving; the admin report will simply miss the line.
		obs.Logger().Printf(`{"level":"error","msg":"activity append failed","err":%q}`, err)
	}
	if s.events != nil {
		s.events.Publish(stream.Event{
			Kind:        string(event),
			Detail:      detail,
			ComplaintID: complaintID,
			Timestamp:   s.now().UTC(),
		})
	}
}
