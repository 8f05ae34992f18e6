package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binbandit/keychainctl/internal/audit"
	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/registry"
	"github.com/binbandit/keychainctl/internal/resolve"
	"github.com/binbandit/keychainctl/internal/secretstore"
)

type fixedAccount string

func (a fixedAccount) Account(_ context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return string(a), nil
}

type literalSecret struct{}

func (literalSecret) SecretValue(req resolve.Request) (string, error) {
	if !req.HasValue {
		return "", resolve.ErrMissingSecretInput
	}
	return req.Value, nil
}

type answer struct {
	yes   bool
	asked []string
}

func (a *answer) Confirm(question string) (bool, error) {
	a.asked = append(a.asked, question)
	return a.yes, nil
}

type failingBackend struct{ secretstore.Backend }

func (failingBackend) Set(context.Context, string, string, string) error {
	return &secretstore.StoreError{Op: "store", Service: "svc", Detail: "denied"}
}

func (failingBackend) Delete(context.Context, string, string) error {
	return &secretstore.StoreError{Op: "delete", Service: "svc", Detail: "denied"}
}

type brokenAudit struct{}

func (brokenAudit) LogSet(string, string, string) error    { return errors.New("disk full") }
func (brokenAudit) LogDelete(string, string, string) error { return errors.New("disk full") }

// backendMemory labels the in-memory test backend; secretstore no longer
// exports a name for it because Open does not accept it.
const backendMemory = "memory"

type fixture struct {
	svc      *Service
	backend  *secretstore.MemoryBackend
	registry *registry.FileStore
	confirm  *answer
	dir      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	backend := secretstore.NewMemoryBackend()
	reg := registry.NewFileStore(filepath.Join(dir, registry.TextFileName), logging.Nop())
	confirm := &answer{}
	return &fixture{
		svc: &Service{
			Backend:     backend,
			BackendName: backendMemory,
			Registry:    reg,
			Accounts:    fixedAccount("alice"),
			Secrets:     literalSecret{},
			Confirm:     confirm,
			Audit:       audit.New(filepath.Join(dir, "audit.log"), true),
			Log:         logging.Nop(),
		},
		backend:  backend,
		registry: reg,
		confirm:  confirm,
		dir:      dir,
	}
}

func value(v string) resolve.Request {
	return resolve.Request{Value: v, HasValue: true}
}

func TestSetGetListDeleteLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	set, err := f.svc.Set(ctx, SetRequest{Service: "svc", Secret: value("pw1")})
	require.NoError(t, err)
	assert.Equal(t, SetResult{Service: "svc", Account: "alice"}, set)

	got, err := f.svc.Get(ctx, GetRequest{Service: "svc"})
	require.NoError(t, err)
	assert.Equal(t, "pw1", got.Value)

	listed, err := f.svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"svc"}, listed.Services)

	data, err := os.ReadFile(f.registry.Path())
	require.NoError(t, err)
	assert.Equal(t, "alice\tsvc\n", string(data))

	f.confirm.yes = true
	del, err := f.svc.Delete(ctx, DeleteRequest{Service: "svc"})
	require.NoError(t, err)
	assert.False(t, del.Aborted)
	assert.Equal(t, []string{"Remove keychain secret for service `svc` (account alice)?"}, f.confirm.asked)

	_, err = f.svc.Get(ctx, GetRequest{Service: "svc"})
	assert.ErrorIs(t, err, secretstore.ErrNotFound)

	listed, err = f.svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed.Services)

	entries, err := f.svc.Audit.(*audit.Logger).Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.OpSet, entries[0].Operation)
	assert.Equal(t, audit.OpDelete, entries[1].Operation)
	assert.Equal(t, backendMemory, entries[0].Backend)
}

func TestSetOverwritesAndTracksOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Set(ctx, SetRequest{Service: "svc", Secret: value("one")})
	require.NoError(t, err)
	_, err = f.svc.Set(ctx, SetRequest{Service: "svc", Secret: value("two")})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, GetRequest{Service: "svc"})
	require.NoError(t, err)
	assert.Equal(t, "two", got.Value)

	services, err := f.registry.List("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc"}, services)
}

func TestSetFailureLeavesRegistryUntouched(t *testing.T) {
	f := newFixture(t)
	f.svc.Backend = failingBackend{}

	_, err := f.svc.Set(context.Background(), SetRequest{Service: "svc", Secret: value("pw")})
	var storeErr *secretstore.StoreError
	require.ErrorAs(t, err, &storeErr)

	_, statErr := os.Stat(f.registry.Path())
	assert.True(t, os.IsNotExist(statErr), "registry must not be written")
}

func TestSetMissingInputStoresNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Set(context.Background(), SetRequest{Service: "svc"})
	assert.ErrorIs(t, err, resolve.ErrMissingSecretInput)

	_, err = f.backend.Get(context.Background(), "alice", "svc")
	assert.ErrorIs(t, err, secretstore.ErrNotFound)
}

func TestDeleteDeclinedKeepsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Set(ctx, SetRequest{Service: "svc", Secret: value("pw")})
	require.NoError(t, err)

	del, err := f.svc.Delete(ctx, DeleteRequest{Service: "svc"})
	require.NoError(t, err)
	assert.True(t, del.Aborted)

	got, err := f.svc.Get(ctx, GetRequest{Service: "svc"})
	require.NoError(t, err)
	assert.Equal(t, "pw", got.Value)

	services, err := f.registry.List("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc"}, services)
}

func TestDeleteYesSkipsConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Set(ctx, SetRequest{Service: "svc", Account: "bob", Secret: value("pw")})
	require.NoError(t, err)

	del, err := f.svc.Delete(ctx, DeleteRequest{Service: "svc", Account: "bob", Yes: true})
	require.NoError(t, err)
	assert.Equal(t, DeleteResult{Service: "svc", Account: "bob"}, del)
	assert.Empty(t, f.confirm.asked)
}

func TestDeleteUntrackedSecretSucceeds(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Delete(context.Background(), DeleteRequest{Service: "ghost", Yes: true})
	require.NoError(t, err)

	_, statErr := os.Stat(f.registry.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteFailureKeepsRegistryEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Set(ctx, SetRequest{Service: "svc", Secret: value("pw")})
	require.NoError(t, err)

	f.svc.Backend = failingBackend{}
	_, err = f.svc.Delete(ctx, DeleteRequest{Service: "svc", Yes: true})
	require.Error(t, err)

	services, err := f.registry.List("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc"}, services)
}

func TestAuditFailureDoesNotFailSet(t *testing.T) {
	f := newFixture(t)
	f.svc.Audit = brokenAudit{}

	_, err := f.svc.Set(context.Background(), SetRequest{Service: "svc", Secret: value("pw")})
	require.NoError(t, err)
}

func TestListMatchAndListAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, s := range []string{"github/work", "github/home", "npm"} {
		_, err := f.svc.Set(ctx, SetRequest{Service: s, Secret: value("x")})
		require.NoError(t, err)
	}
	_, err := f.svc.Set(ctx, SetRequest{Service: "aws", Account: "bob", Secret: value("x")})
	require.NoError(t, err)

	listed, err := f.svc.List(ctx, ListRequest{Match: "github/*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"github/home", "github/work"}, listed.Services)

	all, err := f.svc.ListAll("")
	require.NoError(t, err)
	assert.Equal(t, []ListResult{
		{Account: "alice", Services: []string{"github/home", "github/work", "npm"}},
		{Account: "bob", Services: []string{"aws"}},
	}, all)

	all, err = f.svc.ListAll("npm")
	require.NoError(t, err)
	assert.Equal(t, []ListResult{{Account: "alice", Services: []string{"npm"}}}, all)

	_, err = f.svc.List(ctx, ListRequest{Match: "[unclosed"})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = f.svc.ListAll("[unclosed")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
