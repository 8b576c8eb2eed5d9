package consoletest

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/admin"
	"github.com/kbukum/consoleapi/apiv0"
	"github.com/kbukum/consoleapi/console"
)

// Store holds the fake's state. All methods are safe for concurrent use.
type Store struct {
	mu sync.Mutex

	docs     map[string]apiv0.Document
	versions map[string][]apiv0.Version
	users    []apiv0.User

	account       console.User
	password      string
	settings      console.UserSettings
	sessions      map[string]time.Time
	mfaSecret     string
	recoveryCodes []string
	limitRequests []string

	adminUsers   map[string]admin.User
	projects     map[uuid.UUID]admin.Project
	limits       map[uuid.UUID]admin.ProjectLimits
	usage        map[uuid.UUID]bool
	apiKeys      map[uuid.UUID][]admin.APIKey
	apiKeySecret map[string]uuid.UUID
	buckets      map[string]admin.Bucket
}

func newStore(cfg Config) *Store {
	s := &Store{
		docs:         map[string]apiv0.Document{},
		versions:     map[string][]apiv0.Version{},
		users:        []apiv0.User{},
		password:     cfg.Password,
		sessions:     map[string]time.Time{},
		adminUsers:   map[string]admin.User{},
		projects:     map[uuid.UUID]admin.Project{},
		limits:       map[uuid.UUID]admin.ProjectLimits{},
		usage:        map[uuid.UUID]bool{},
		apiKeys:      map[uuid.UUID][]admin.APIKey{},
		apiKeySecret: map[string]uuid.UUID{},
		buckets:      map[string]admin.Bucket{},
	}
	s.account = console.User{
		ID:                    uuid.NewString(),
		FullName:              cfg.FullName,
		Email:                 cfg.Email,
		ProjectLimit:          3,
		ProjectStorageLimit:   defaultStorageLimit,
		ProjectBandwidthLimit: defaultStorageLimit,
		ProjectSegmentLimit:   10_000,
		CreatedAtRaw:          cfg.Now().UTC().Format(time.RFC3339),
	}
	s.settings = console.UserSettings{PassphrasePrompt: true}
	return s
}

// PutDocument stores doc under its PathParam with a first version.
func (s *Store) PutDocument(doc apiv0.Document) apiv0.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.Version.Number == 0 {
		doc.Version = apiv0.Version{Date: doc.Date, Number: 1}
	}
	s.docs[doc.PathParam] = doc
	s.versions[doc.PathParam] = append(s.versions[doc.PathParam], doc.Version)
	return doc
}

func (s *Store) listDocuments() []apiv0.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]apiv0.Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b apiv0.Document) int {
		switch {
		case a.PathParam < b.PathParam:
			return -1
		case a.PathParam > b.PathParam:
			return 1
		}
		return 0
	})
	return out
}

func (s *Store) document(path string) (apiv0.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[path]
	return d, ok
}

func (s *Store) documentVersions(path string) ([]apiv0.Version, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.versions[path]
	return slices.Clone(v), ok
}

func (s *Store) updateDocument(path string, id uuid.UUID, date time.Time, content string) (apiv0.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[path]
	if !ok {
		return d, errNotFound
	}
	if d.ID != id {
		return d, fmt.Errorf("%w: document id does not match", errConflict)
	}
	d.Body = content
	d.Date = date
	d.Version = apiv0.Version{Date: date, Number: d.Version.Number + 1}
	s.docs[path] = d
	s.versions[path] = append(s.versions[path], d.Version)
	return d, nil
}

// Users returns the v0 users created so far.
func (s *Store) Users() []apiv0.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users)
}

func (s *Store) addUsers(users []apiv0.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
}

// Account returns the console account.
func (s *Store) Account() console.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

// SetFreezeStatus changes the console account's freeze status.
func (s *Store) SetFreezeStatus(fs console.FreezeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account.FreezeStatus = fs
}

// LimitRequests returns the requested project limits, oldest first.
func (s *Store) LimitRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.limitRequests)
}

// PutBucket adds a bucket to a project, for the geofence routes.
func (s *Store) PutBucket(project uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[bucketKey(project, name)] = admin.Bucket{
		Name:      name,
		ProjectID: project,
		Placement: "",
		CreatedAt: time.Now().UTC(),
	}
}

// SetProjectUsage marks a project as having usage this month.
func (s *Store) SetProjectUsage(project uuid.UUID, used bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage[project] = used
}

func bucketKey(project uuid.UUID, name string) string {
	return project.String() + "/" + name
}
