package repositories_test

import (
	"context"
	"testing"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/anonto42/nano-midea/gateway/internal/repositories/repotest"
	"github.com/stretchr/testify/require"
)

func TestMigrateSeedsMemberTypes(t *testing.T) {
	ctx := context.Background()
	db := repotest.Open(t)
	// a second migration keeps the seeded rows
	require.NoError(t, repositories.Migrate(ctx, db))

	memberTypes, err := repositories.NewPostgresMemberTypeRepository(db).GetMemberTypes(ctx)
	require.NoError(t, err)
	require.Len(t, memberTypes, 2)
	require.Equal(t, models.MemberTypeBasic, memberTypes[0].ID)
	require.Equal(t, 20, memberTypes[0].PostsLimitPerMonth)
	require.Equal(t, models.MemberTypeBusiness, memberTypes[1].ID)
}

func TestUserRelationsProjection(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(t)

	ann := &models.User{Name: "Ann", Balance: 100}
	bob := &models.User{Name: "Bob", Balance: 5}
	require.NoError(t, store.Users.CreateUser(ctx, ann))
	require.NoError(t, store.Users.CreateUser(ctx, bob))
	require.NotEmpty(t, ann.ID)
	require.NoError(t, store.Subscriptions.CreateSubscription(ctx, ann.ID, bob.ID))

	plain, err := store.Users.GetUserByID(ctx, ann.ID, repositories.UserRelations{})
	require.NoError(t, err)
	require.Nil(t, plain.UserSubscribedTo)
	require.Nil(t, plain.SubscribedToUser)

	full, err := store.Users.GetUserByID(ctx, ann.ID, repositories.UserRelations{SubscribedTo: true, Subscribers: true})
	require.NoError(t, err)
	require.Equal(t, []models.Subscription{{SubscriberID: ann.ID, AuthorID: bob.ID}}, full.UserSubscribedTo)
	require.NotNil(t, full.SubscribedToUser)
	require.Empty(t, full.SubscribedToUser)

	users, err := store.Users.FindByIDs(ctx, []string{bob.ID, ann.ID}, repositories.UserRelations{Subscribers: true})
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Nil(t, u.UserSubscribedTo)
		if u.ID == bob.ID {
			require.Len(t, u.SubscribedToUser, 1)
		}
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	store := repotest.NewStore(t)
	_, err := store.Users.GetUserByID(context.Background(), "0b5f7a52-46c2-4d38-8a57-d7f05f4c8b3a", repositories.UserRelations{})
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(t)
	user := &models.User{Name: "Ann", Balance: 100}
	require.NoError(t, store.Users.CreateUser(ctx, user))

	name := "Anna"
	updated, err := store.Users.UpdateUser(ctx, user.ID, models.ChangeUserRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Anna", updated.Name)
	require.Equal(t, 100.0, updated.Balance)

	_, err = store.Users.UpdateUser(ctx, "0b5f7a52-46c2-4d38-8a57-d7f05f4c8b3a", models.ChangeUserRequest{Name: &name})
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(t)

	ann := &models.User{Name: "Ann"}
	bob := &models.User{Name: "Bob"}
	require.NoError(t, store.Users.CreateUser(ctx, ann))
	require.NoError(t, store.Users.CreateUser(ctx, bob))
	require.NoError(t, store.Subscriptions.CreateSubscription(ctx, ann.ID, bob.ID))
	require.NoError(t, store.Subscriptions.CreateSubscription(ctx, bob.ID, ann.ID))
	require.NoError(t, store.Posts.CreatePost(ctx, &models.Post{AuthorID: ann.ID, Title: "t", Content: "c"}))
	require.NoError(t, store.Profiles.CreateProfile(ctx, &models.Profile{UserID: ann.ID, MemberTypeID: models.MemberTypeBasic, YearOfBirth: 1990}))

	require.NoError(t, store.Users.DeleteUser(ctx, ann.ID))

	subs, err := store.Subscriptions.FindByAuthorIDs(ctx, []string{ann.ID, bob.ID})
	require.NoError(t, err)
	require.Empty(t, subs)
	posts, err := store.Posts.FindByAuthorIDs(ctx, []string{ann.ID})
	require.NoError(t, err)
	require.Empty(t, posts)
	profiles, err := store.Profiles.FindByUserIDs(ctx, []string{ann.ID})
	require.NoError(t, err)
	require.Empty(t, profiles)

	require.ErrorIs(t, store.Users.DeleteUser(ctx, ann.ID), repositories.ErrNotFound)
}

func TestSubscriptionConstraints(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(t)

	ann := &models.User{Name: "Ann"}
	bob := &models.User{Name: "Bob"}
	require.NoError(t, store.Users.CreateUser(ctx, ann))
	require.NoError(t, store.Users.CreateUser(ctx, bob))
	require.NoError(t, store.Subscriptions.CreateSubscription(ctx, ann.ID, bob.ID))
	require.Error(t, store.Subscriptions.CreateSubscription(ctx, ann.ID, bob.ID), "duplicate edge")

	err := store.Subscriptions.DeleteSubscription(ctx, bob.ID, ann.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	require.EqualError(t, err, "subscription: not found")

	subs, err := store.Subscriptions.FindBySubscriberIDs(ctx, []string{ann.ID})
	require.NoError(t, err)
	require.Len(t, subs, 1)

	require.NoError(t, store.Subscriptions.DeleteSubscription(ctx, ann.ID, bob.ID))
}

func TestProfileUniquePerUser(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(t)

	ann := &models.User{Name: "Ann"}
	require.NoError(t, store.Users.CreateUser(ctx, ann))
	require.NoError(t, store.Profiles.CreateProfile(ctx, &models.Profile{UserID: ann.ID, MemberTypeID: models.MemberTypeBasic}))
	require.Error(t, store.Profiles.CreateProfile(ctx, &models.Profile{UserID: ann.ID, MemberTypeID: models.MemberTypeBusiness}))

	profiles, err := store.Profiles.FindByMemberTypeIDs(ctx, []models.MemberTypeID{models.MemberTypeBasic})
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	year := 1985
	business := models.MemberTypeBusiness
	updated, err := store.Profiles.UpdateProfile(ctx, profiles[0].ID, models.ChangeProfileRequest{YearOfBirth: &year, MemberTypeID: &business})
	require.NoError(t, err)
	require.Equal(t, 1985, updated.YearOfBirth)
	require.Equal(t, models.MemberTypeBusiness, updated.MemberTypeID)

	deleted, err := store.Profiles.DeleteProfile(ctx, updated.ID)
	require.NoError(t, err)
	require.Equal(t, ann.ID, deleted.UserID)
	_, err = store.Profiles.GetProfileByID(ctx, updated.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}
