package kvstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type payload struct {
	DrawNumber int   `json:"drawNumber"`
	Numbers    []int `json:"numbers"`
}

type BadgerStoreSuite struct {
	suite.Suite
	store *BadgerStore
}

func (s *BadgerStoreSuite) SetupTest() {
	store, err := NewBadgerStore("", "test")
	s.Require().NoError(err)
	s.store = store
}

func (s *BadgerStoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *BadgerStoreSuite) TestSetAndGet() {
	in := payload{DrawNumber: 1101, Numbers: []int{1, 2, 3, 4, 5, 6}}
	s.Require().NoError(s.store.SetAny("draw/1101", in, 0))

	var out payload
	found, err := s.store.GetAny("draw/1101", &out)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(in, out)
}

func (s *BadgerStoreSuite) TestMissingKey() {
	var out payload
	found, err := s.store.GetAny("draw/1", &out)
	s.NoError(err)
	s.False(found)
}

func (s *BadgerStoreSuite) TestDelete() {
	s.Require().NoError(s.store.SetAny("k", payload{DrawNumber: 1}, 0))
	s.Require().NoError(s.store.Delete("k"))

	var out payload
	found, err := s.store.GetAny("k", &out)
	s.NoError(err)
	s.False(found)
}

func (s *BadgerStoreSuite) TestTTLExpires() {
	s.Require().NoError(s.store.SetAny("short", payload{DrawNumber: 2}, time.Second))

	s.Eventually(func() bool {
		var out payload
		found, err := s.store.GetAny("short", &out)
		return err == nil && !found
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *BadgerStoreSuite) TestInvalidArguments() {
	s.ErrorIs(s.store.SetAny("", payload{}, 0), ErrKeyEmpty)
	s.ErrorIs(s.store.SetAny("k", nil, 0), ErrNilValue)
	_, err := s.store.GetAny("k", nil)
	s.ErrorIs(err, ErrNilValue)
}

func TestBadgerStoreSuite(t *testing.T) {
	suite.Run(t, new(BadgerStoreSuite))
}

func TestBadgerStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBadgerStore(dir, "")
	require.NoError(t, err)
	require.NoError(t, store.SetAny("snapshot", []int{1, 2, 3}, 0))
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(dir, "")
	require.NoError(t, err)
	defer reopened.Close()

	var out []int
	found, err := reopened.GetAny("snapshot", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []int{1, 2, 3}, out)
}
