package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChallengeService() (*ChallengeService, *fakeChallengeRepo, *fakeSolutionRepo) {
	challengeRepo := newFakeChallengeRepo()
	solutionRepo := newFakeSolutionRepo()
	return NewChallengeService(challengeRepo, solutionRepo, nil), challengeRepo, solutionRepo
}

func validCreateRequest(t *testing.T) CreateChallengeRequest {
	t.Helper()
	return CreateChallengeRequest{
		Name:          "Sum Two Numbers",
		Difficulty:    2,
		Description:   "Add the two inputs.",
		TestCases:     mustDecodeArray(t, `[[1,2],[3,4]]`),
		TestSolutions: mustDecodeArray(t, `[3,7]`),
	}
}

func TestCreateChallengeStoresSolutionSeparately(t *testing.T) {
	svc, _, solutionRepo := newChallengeService()

	challenge, err := svc.CreateChallenge(context.Background(), "author-1", validCreateRequest(t))
	require.NoError(t, err)
	assert.NotEmpty(t, challenge.ID)
	assert.Equal(t, "sum-two-numbers", challenge.Slug)
	assert.Equal(t, "author-1", challenge.AuthorID)

	solution, err := solutionRepo.FindByID(context.Background(), challenge.SolutionID)
	require.NoError(t, err)
	assert.Len(t, solution.TestSolutions, 2)

	// Expected outputs must never leak through challenge serialization.
	data, err := json.Marshal(challenge)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "testsolutions")
	assert.NotContains(t, string(data), "solution_id")
}

func TestCreateChallengeValidation(t *testing.T) {
	svc, _, _ := newChallengeService()

	missingName := validCreateRequest(t)
	missingName.Name = ""
	_, err := svc.CreateChallenge(context.Background(), "author-1", missingName)
	assert.ErrorIs(t, err, common.ErrBadRequest)

	noCases := validCreateRequest(t)
	noCases.TestCases = nil
	_, err = svc.CreateChallenge(context.Background(), "author-1", noCases)
	assert.ErrorIs(t, err, common.ErrBadRequest)

	mismatched := validCreateRequest(t)
	mismatched.TestSolutions = mustDecodeArray(t, `[3]`)
	_, err = svc.CreateChallenge(context.Background(), "author-1", mismatched)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestListChallengesFilters(t *testing.T) {
	svc, challengeRepo, _ := newChallengeService()

	created, err := svc.CreateChallenge(context.Background(), "author-1", validCreateRequest(t))
	require.NoError(t, err)

	harder := validCreateRequest(t)
	harder.Name = "Reverse a List"
	harder.Difficulty = 5
	_, err = svc.CreateChallenge(context.Background(), "author-1", harder)
	require.NoError(t, err)
	require.Len(t, challengeRepo.challenges, 2)

	all, err := svc.ListChallenges(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := svc.ListChallenges(context.Background(), "sum", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, created.ID, byName[0].ID)

	byDifficulty, err := svc.ListChallenges(context.Background(), "", "5")
	require.NoError(t, err)
	require.Len(t, byDifficulty, 1)
	assert.Equal(t, "Reverse a List", byDifficulty[0].Name)

	none, err := svc.ListChallenges(context.Background(), "sum", "5")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListChallengesRejectsNonNumericDifficulty(t *testing.T) {
	svc, _, _ := newChallengeService()

	_, err := svc.ListChallenges(context.Background(), "", "hard")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateChallengeOwnerOnly(t *testing.T) {
	svc, _, _ := newChallengeService()

	challenge, err := svc.CreateChallenge(context.Background(), "author-1", validCreateRequest(t))
	require.NoError(t, err)

	newName := "Renamed"
	_, err = svc.UpdateChallenge(context.Background(), "intruder", challenge.ID, UpdateChallengeRequest{Name: &newName})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	updated, err := svc.UpdateChallenge(context.Background(), "author-1", challenge.ID, UpdateChallengeRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "renamed", updated.Slug)
}

func TestUpdateChallengeKeepsTestCaseCountAligned(t *testing.T) {
	svc, _, _ := newChallengeService()

	challenge, err := svc.CreateChallenge(context.Background(), "author-1", validCreateRequest(t))
	require.NoError(t, err)

	shorter := mustDecodeArray(t, `[[1,2]]`)
	_, err = svc.UpdateChallenge(context.Background(), "author-1", challenge.ID, UpdateChallengeRequest{TestCases: &shorter})
	assert.ErrorIs(t, err, common.ErrValidation)

	sameLength := mustDecodeArray(t, `[[9,9],[8,8]]`)
	updated, err := svc.UpdateChallenge(context.Background(), "author-1", challenge.ID, UpdateChallengeRequest{TestCases: &sameLength})
	require.NoError(t, err)
	assert.Equal(t, sameLength, updated.TestCases)
}

func TestDeleteChallengeRemovesSolution(t *testing.T) {
	svc, challengeRepo, solutionRepo := newChallengeService()

	challenge, err := svc.CreateChallenge(context.Background(), "author-1", validCreateRequest(t))
	require.NoError(t, err)

	err = svc.DeleteChallenge(context.Background(), "intruder", challenge.ID)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	require.NoError(t, svc.DeleteChallenge(context.Background(), "author-1", challenge.ID))
	assert.Empty(t, challengeRepo.challenges)
	assert.Empty(t, solutionRepo.solutions)

	err = svc.DeleteChallenge(context.Background(), "author-1", challenge.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
