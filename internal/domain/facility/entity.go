package facility

import (
	"strings"
	"time"

	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxNameLength     = 120
	MaxLocationLength = 255
)

var (
	ErrFacilityNotFound = errs.NewKind("facility not found", errs.ErrNotFound)
	ErrEmptyName        = errs.NewKind("facility name is required", errs.ErrInvalidInput)
	ErrNameTooLong      = errs.NewKind("facility name is too long", errs.ErrInvalidInput)
	ErrLocationTooLong  = errs.NewKind("facility location is too long", errs.ErrInvalidInput)
)

// Facility is a parking lot. Capacity counts spots in service and freeCount
// counts spots in the free state; both move only with spot transitions.
type Facility struct {
	id        uuid.UUID
	name      string
	location  string
	capacity  int
	freeCount int
	createdAt time.Time
	updatedAt time.Time
}

func NewFacility(name, location string, now time.Time) (*Facility, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if len(location) > MaxLocationLength {
		return nil, ErrLocationTooLong
	}
	return &Facility{
		id:        uuid.New(),
		name:      name,
		location:  location,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(id uuid.UUID, name, location string, capacity, freeCount int, createdAt, updatedAt time.Time) *Facility {
	return &Facility{
		id:        id,
		name:      name,
		location:  location,
		capacity:  capacity,
		freeCount: freeCount,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// OccupancyPercent is (capacity - free) / capacity * 100, zero for an empty facility.
func (f *Facility) OccupancyPercent() float64 {
	if f.capacity <= 0 {
		return 0
	}
	return float64(f.capacity-f.freeCount) / float64(f.capacity) * 100
}

func (f *Facility) ID() uuid.UUID        { return f.id }
func (f *Facility) Name() string         { return f.name }
func (f *Facility) Location() string     { return f.location }
func (f *Facility) Capacity() int        { return f.capacity }
func (f *Facility) FreeCount() int       { return f.freeCount }
func (f *Facility) CreatedAt() time.Time { return f.createdAt }
func (f *Facility) UpdatedAt() time.Time { return f.updatedAt }
