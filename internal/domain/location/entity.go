package location

import (
	"time"

	"github.com/google/uuid"
)

// Location represents one airport station. Immutable after creation
// except for the active flag; never deleted in normal operation.
type Location struct {
	ID        uuid.UUID
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
