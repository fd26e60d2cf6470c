package registry

import (
	"sync"
	"testing"
	"time"

	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu   sync.Mutex
	sent map[models.UserID][]models.Event
}

func newRecordingSink() *recordingSink {
	return &recordingSink{sent: make(map[models.UserID][]models.Event)}
}

func (r *recordingSink) Send(uid models.UserID, evt models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[uid] = append(r.sent[uid], evt)
}

func (r *recordingSink) countOf(uid models.UserID, eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, evt := range r.sent[uid] {
		if evt.Type == eventType {
			n++
		}
	}
	return n
}

func emptyCatalog() *catalog.Catalog {
	return catalog.New(map[models.CardID]catalog.CardFacts{}, []string{"ABC"}, nil, nil)
}

func TestRegistry_CreateSessionSeatsOwnerOnce(t *testing.T) {
	sink := newRecordingSink()
	r := New(emptyCatalog(), sink)
	owner := models.NewUserID()

	s := r.CreateSession(owner)
	t.Cleanup(s.Stop)
	require.NoError(t, s.Join(owner, "alice"))
	require.Equal(t, 1, s.UserCount())

	got, ok := r.SessionFor(owner)
	require.True(t, ok)
	require.Equal(t, s.ID, got.ID)
}

func TestRegistry_JoinSupplantsPreviousSession(t *testing.T) {
	sink := newRecordingSink()
	r := New(emptyCatalog(), sink)
	owner1 := models.NewUserID()
	owner2 := models.NewUserID()
	user := models.NewUserID()

	s1 := r.CreateSession(owner1)
	t.Cleanup(s1.Stop)
	require.NoError(t, s1.Join(owner1, "alice"))
	s2 := r.CreateSession(owner2)
	t.Cleanup(s2.Stop)
	require.NoError(t, s2.Join(owner2, "bob"))

	require.NoError(t, r.Join(s1.ID, user, "carl"))
	require.Equal(t, 2, s1.UserCount())

	require.NoError(t, r.Join(s2.ID, user, "carl"))
	require.Equal(t, 1, s1.UserCount(), "leaving s1 behind should drop carl's seat there")
	require.Equal(t, 2, s2.UserCount())

	got, ok := r.SessionFor(user)
	require.True(t, ok)
	require.Equal(t, s2.ID, got.ID)
}

func TestRegistry_PublicSessionsOnlyListsPublicOnes(t *testing.T) {
	sink := newRecordingSink()
	r := New(emptyCatalog(), sink)
	owner := models.NewUserID()
	s := r.CreateSession(owner)
	t.Cleanup(s.Stop)
	require.NoError(t, s.Join(owner, "alice"))

	require.Empty(t, r.PublicSessions())

	s.SetIsPublic(owner, true)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && len(r.PublicSessions()) == 0 {
		time.Sleep(time.Millisecond)
	}
	require.Contains(t, r.PublicSessions(), s.ID)
}

func TestRegistry_JoinCreatesSessionOnUnknownID(t *testing.T) {
	sink := newRecordingSink()
	r := New(emptyCatalog(), sink)
	user := models.NewUserID()
	freshID := models.NewSessionID()

	_, ok := r.Get(freshID)
	require.False(t, ok, "id must not already be registered")

	require.NoError(t, r.Join(freshID, user, "dana"))

	s, ok := r.Get(freshID)
	require.True(t, ok, "join to an unknown sessionID must create it (spec §3)")
	t.Cleanup(s.Stop)
	require.True(t, s.IsOwner(user), "the first joiner to a newly created session becomes owner")
	require.Equal(t, 1, s.UserCount())

	got, ok := r.SessionFor(user)
	require.True(t, ok)
	require.Equal(t, freshID, got.ID)
}

func TestRegistry_RemovedPlayerCanJoinTheirRedirectSession(t *testing.T) {
	sink := newRecordingSink()
	r := New(emptyCatalog(), sink)
	owner := models.NewUserID()
	target := models.NewUserID()

	s := r.CreateSession(owner)
	t.Cleanup(s.Stop)
	require.NoError(t, s.Join(owner, "alice"))
	require.NoError(t, r.Join(s.ID, target, "bob"))

	newID, err := s.RemovePlayer(owner, target)
	require.NoError(t, err)
	require.Equal(t, 1, s.UserCount(), "target should no longer be seated in the original session")

	// The client is expected to follow the setSession redirect with its own
	// join; registry.Join's create-on-unknown path must materialize it.
	require.NoError(t, r.Join(newID, target, "bob"))
	redirected, ok := r.Get(newID)
	require.True(t, ok)
	t.Cleanup(redirected.Stop)
	require.True(t, redirected.IsOwner(target), "the removed player becomes owner of their fresh session")

	got, ok := r.SessionFor(target)
	require.True(t, ok)
	require.Equal(t, newID, got.ID)
}

func TestRegistry_DestroyRemovesSessionFromDirectory(t *testing.T) {
	sink := newRecordingSink()
	r := New(emptyCatalog(), sink)
	owner := models.NewUserID()
	s := r.CreateSession(owner)
	require.NoError(t, s.Join(owner, "alice"))

	r.Leave(owner)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := r.Get(s.ID); !ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("expected session to be removed from the registry once its last member leaves")
}
