package state

import (
	"time"

	"github.com/ardanlabs/fraudledger/foundation/ledger/database"
)

// QueryActor returns the actor for the address.
func (s *State) QueryActor(address string) (database.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actor, exists := s.actors[address]
	if !exists {
		return database.Actor{}, database.ErrNotFound
	}

	return actor, nil
}

// RetrieveActors returns every actor in the order they were created.
func (s *State) RetrieveActors() []database.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyActors()
}

// UpsertActor creates the actor if it does not exist and merges the patch.
func (s *State) UpsertActor(address string, patch database.ActorPatch) database.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	actor := s.getOrCreateActor(address, now).Apply(patch, now)
	s.putActor(actor)

	s.evHandler("state: UpsertActor: actor[%s]: trust[%s]", actor.Address, actor.TrustScore.StringFixed(2))

	return actor
}

// PatchActor merges the patch into an existing actor.
func (s *State) PatchActor(address string, patch database.ActorPatch) (database.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, exists := s.actors[address]
	if !exists {
		return database.Actor{}, database.ErrNotFound
	}

	actor = actor.Apply(patch, s.now())
	s.putActor(actor)

	s.evHandler("state: PatchActor: actor[%s]: trust[%s]", actor.Address, actor.TrustScore.StringFixed(2))

	return actor, nil
}

// =============================================================================

// getOrCreateActor must be called while holding the write lock.
func (s *State) getOrCreateActor(address string, now time.Time) database.Actor {
	actor, exists := s.actors[address]
	if !exists {
		actor = database.NewActor(address, now)
		s.putActor(actor)
		s.evHandler("state: getOrCreateActor: created: actor[%s]", address)
	}

	return actor
}

// putActor must be called while holding the write lock.
func (s *State) putActor(actor database.Actor) {
	if _, exists := s.actors[actor.Address]; !exists {
		s.actorOrder = append(s.actorOrder, actor.Address)
	}
	s.actors[actor.Address] = actor
}

// copyActors must be called while holding a lock.
func (s *State) copyActors() []database.Actor {
	actors := make([]database.Actor, len(s.actorOrder))
	for i, address := range s.actorOrder {
		actors[i] = s.actors[address]
	}

	return actors
}
