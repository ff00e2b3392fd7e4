package services

import (
	"context"
	"testing"

	"devlink-backend/domain"
	"devlink-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, env *testEnv, name string) *domain.User {
	t.Helper()
	user := domain.NewUser(name, name+"@example.com", "hashed", "https://example.com/a.png")
	require.NoError(t, env.users.Save(context.Background(), user))
	return user
}

func TestUpsertCreatesThenMerges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "jordan")

	created, err := env.profile.Upsert(ctx, user.ID, domain.ProfileUpdate{
		Status:   strPtr("Developer"),
		Skills:   []string{"Go", "AWS"},
		Company:  strPtr("Acme"),
		Location: strPtr("Berlin"),
		Social:   map[string]string{domain.SocialTwitter: "https://twitter.com/jordan"},
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, []string{"Go", "AWS"}, created.Skills)

	// A second upsert only touches the fields it carries.
	merged, err := env.profile.Upsert(ctx, user.ID, domain.ProfileUpdate{
		Status: strPtr("Senior Developer"),
		Social: map[string]string{domain.SocialYoutube: "https://youtube.com/@jordan"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", merged.Status)
	assert.Equal(t, "Acme", merged.Company, "absent fields keep their stored value")
	assert.Equal(t, []string{"Go", "AWS"}, merged.Skills)
	assert.Equal(t, "https://twitter.com/jordan", merged.Social[domain.SocialTwitter])
	assert.Equal(t, "https://youtube.com/@jordan", merged.Social[domain.SocialYoutube])
}

func TestGetOwnWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "jordan")

	_, err := env.profile.GetOwn(context.Background(), user.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestExperienceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "jordan")

	_, err := env.profile.Upsert(ctx, user.ID, domain.ProfileUpdate{
		Status: strPtr("Developer"),
		Skills: []string{"Go"},
	})
	require.NoError(t, err)

	first, err := env.profile.AddExperience(ctx, user.ID, domain.Experience{
		Title:   "Engineer",
		Company: "Acme",
		From:    "2019-01-01",
	})
	require.NoError(t, err)
	require.Len(t, first.Experience, 1)

	second, err := env.profile.AddExperience(ctx, user.ID, domain.Experience{
		Title:   "Senior Engineer",
		Company: "Acme",
		From:    "2022-01-01",
		Current: true,
	})
	require.NoError(t, err)
	require.Len(t, second.Experience, 2)
	assert.Equal(t, "Senior Engineer", second.Experience[0].Title, "newest entry first")

	removed, err := env.profile.RemoveExperience(ctx, user.ID, first.Experience[0].ID)
	require.NoError(t, err)
	require.Len(t, removed.Experience, 1)
	assert.Equal(t, "Senior Engineer", removed.Experience[0].Title)

	_, err = env.profile.RemoveExperience(ctx, user.ID, "missing-id")
	assert.True(t, errors.IsNotFound(err), "removing an absent entry must fail")
}

func TestEducationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "jordan")

	_, err := env.profile.Upsert(ctx, user.ID, domain.ProfileUpdate{
		Status: strPtr("Developer"),
		Skills: []string{"Go"},
	})
	require.NoError(t, err)

	profile, err := env.profile.AddEducation(ctx, user.ID, domain.Education{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         "2014-09-01",
	})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	assert.NotEmpty(t, profile.Education[0].ID)

	removed, err := env.profile.RemoveEducation(ctx, user.ID, profile.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, removed.Education)

	_, err = env.profile.RemoveEducation(ctx, user.ID, "missing-id")
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "jordan")
	other := seedUser(t, env, "casey")

	_, err := env.profile.Upsert(ctx, user.ID, domain.ProfileUpdate{
		Status: strPtr("Developer"),
		Skills: []string{"Go"},
	})
	require.NoError(t, err)

	mine, err := env.post.Create(ctx, user.ID, CreatePostInput{Title: "mine", Text: "hello"})
	require.NoError(t, err)
	theirs, err := env.post.Create(ctx, other.ID, CreatePostInput{Title: "theirs", Text: "hi"})
	require.NoError(t, err)

	require.NoError(t, env.profile.DeleteCascade(ctx, user.ID))

	_, err = env.users.GetByID(ctx, user.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = env.profiles.GetByUserID(ctx, user.ID)
	assert.True(t, errors.IsNotFound(err))
	_, err = env.posts.GetByID(ctx, mine.ID)
	assert.True(t, errors.IsNotFound(err), "the user's posts go with the account")

	surviving, err := env.posts.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, surviving.UserID, "other users' posts are untouched")

	assert.Contains(t, env.published.detailTypes(), "user.deleted")
}

func TestDeleteCascadeWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "jordan")

	// No profile was ever created; deletion still removes the user.
	require.NoError(t, env.profile.DeleteCascade(ctx, user.ID))

	_, err := env.users.GetByID(ctx, user.ID)
	assert.True(t, errors.IsNotFound(err))
}
