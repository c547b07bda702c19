package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/repository"
)

type fakeChallengeRepo struct {
	challenges map[string]*model.Challenge
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{challenges: map[string]*model.Challenge{}}
}

func (f *fakeChallengeRepo) Create(ctx context.Context, tx *sql.Tx, c *model.Challenge) error {
	cp := *c
	f.challenges[c.ID] = &cp
	return nil
}

func (f *fakeChallengeRepo) Update(ctx context.Context, c *model.Challenge) error {
	if _, ok := f.challenges[c.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *c
	f.challenges[c.ID] = &cp
	return nil
}

func (f *fakeChallengeRepo) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	c, ok := f.challenges[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChallengeRepo) List(ctx context.Context, filter repository.ChallengeFilter) ([]model.Challenge, error) {
	result := []model.Challenge{}
	for _, c := range f.challenges {
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Difficulty != nil && c.Difficulty != *filter.Difficulty {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (f *fakeChallengeRepo) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	if _, ok := f.challenges[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.challenges, id)
	return nil
}

type fakeSolutionRepo struct {
	solutions map[string]*model.Solution
	finds     int
}

func newFakeSolutionRepo() *fakeSolutionRepo {
	return &fakeSolutionRepo{solutions: map[string]*model.Solution{}}
}

func (f *fakeSolutionRepo) Create(ctx context.Context, tx *sql.Tx, s *model.Solution) error {
	cp := *s
	f.solutions[s.ID] = &cp
	return nil
}

func (f *fakeSolutionRepo) FindByID(ctx context.Context, id string) (*model.Solution, error) {
	f.finds++
	s, ok := f.solutions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSolutionRepo) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	delete(f.solutions, id)
	return nil
}

type fakeUserRepo struct {
	users  map[string]*model.User
	solved map[string][]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, solved: map[string][]string{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return common.ErrConflict
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateEmail(ctx context.Context, id, email string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Email = email
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) AddSolvedChallenge(ctx context.Context, userID, challengeID string) (bool, error) {
	for _, id := range f.solved[userID] {
		if id == challengeID {
			return false, nil
		}
	}
	f.solved[userID] = append(f.solved[userID], challengeID)
	return true, nil
}

func (f *fakeUserRepo) GetSolvedChallengeIDs(ctx context.Context, userID string) ([]string, error) {
	return f.solved[userID], nil
}

func (f *fakeUserRepo) GetCreatedChallengeIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountSolvedChallenges(ctx context.Context, userID string) (int, error) {
	return len(f.solved[userID]), nil
}
