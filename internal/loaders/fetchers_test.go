package loaders

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/anonto42/nano-midea/gateway/internal/repositories/repotest"
	"github.com/stretchr/testify/require"
)

func TestAlignOneIsPositional(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		present := map[models.MemberTypeID]bool{}
		var rows []*models.MemberType
		for i := 0; i < 20; i++ {
			if rng.Intn(2) == 0 {
				id := models.MemberTypeID(fmt.Sprint(i))
				present[id] = true
				rows = append(rows, &models.MemberType{ID: id, PostsLimitPerMonth: i})
			}
		}
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

		keys := make([]models.MemberTypeID, rng.Intn(30))
		for i := range keys {
			keys[i] = models.MemberTypeID(fmt.Sprint(rng.Intn(25)))
		}

		out := alignOne(keys, rows, func(m *models.MemberType) models.MemberTypeID { return m.ID })
		require.Len(t, out, len(keys))
		for i, key := range keys {
			if !present[key] {
				require.Nil(t, out[i], "key %s", key)
				continue
			}
			require.Equal(t, key, out[i].ID)
		}
	}
}

func TestAlignManyDefaultsToEmpty(t *testing.T) {
	rows := []*models.Post{
		{ID: "p1", AuthorID: "a"},
		{ID: "p2", AuthorID: "c"},
		{ID: "p3", AuthorID: "a"},
	}
	out := alignMany([]string{"a", "b", "c", "a"}, rows, func(p *models.Post) string { return p.AuthorID })
	require.Len(t, out, 4)
	require.Len(t, out[0], 2)
	require.NotNil(t, out[1])
	require.Empty(t, out[1])
	require.Equal(t, "p2", out[2][0].ID)
	require.Equal(t, out[0], out[3])
}

func TestFetchersAgainstStore(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(t)

	ann := &models.User{Name: "Ann"}
	bob := &models.User{Name: "Bob"}
	require.NoError(t, store.Users.CreateUser(ctx, ann))
	require.NoError(t, store.Users.CreateUser(ctx, bob))
	require.NoError(t, store.Posts.CreatePost(ctx, &models.Post{AuthorID: bob.ID, Title: "one", Content: "x"}))
	require.NoError(t, store.Posts.CreatePost(ctx, &models.Post{AuthorID: bob.ID, Title: "two", Content: "y"}))
	require.NoError(t, store.Profiles.CreateProfile(ctx, &models.Profile{UserID: ann.ID, MemberTypeID: models.MemberTypeBusiness, YearOfBirth: 1990}))

	missing := "0b5f7a52-46c2-4d38-8a57-d7f05f4c8b3a"

	posts, err := postsByAuthor(store.Posts)(ctx, []string{ann.ID, bob.ID, missing})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Empty(t, posts[0])
	require.Len(t, posts[1], 2)
	require.Empty(t, posts[2])

	profiles, err := profilesByUser(store.Profiles)(ctx, []string{bob.ID, ann.ID})
	require.NoError(t, err)
	require.Nil(t, profiles[0])
	require.Equal(t, ann.ID, profiles[1].UserID)

	memberTypes, err := memberTypesByID(store.MemberTypes)(ctx, []models.MemberTypeID{models.MemberTypeBusiness, "GOLD", models.MemberTypeBasic})
	require.NoError(t, err)
	require.Equal(t, models.MemberTypeBusiness, memberTypes[0].ID)
	require.Nil(t, memberTypes[1])
	require.Equal(t, models.MemberTypeBasic, memberTypes[2].ID)

	users, err := usersByID(store.Users, func() repositories.UserRelations { return repositories.UserRelations{} })(ctx, []string{missing, bob.ID, ann.ID})
	require.NoError(t, err)
	require.Nil(t, users[0])
	require.Equal(t, "Bob", users[1].Name)
	require.Equal(t, "Ann", users[2].Name)
}
