package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
)

func sampleUser() *entity.User {
	age := 33
	return &entity.User{
		ID:           "u1",
		Username:     "stargazer",
		Email:        "stargazer@example.com",
		PasswordHash: "$2a$10$secret",
		Name:         "Tycho",
		Surname:      "Brahe",
		Age:          &age,
		About:        "nova hunter",
		AvatarURL:    "https://cdn/avatar.png",
		CreatedAt:    time.Now(),
	}
}

func TestUserViews(t *testing.T) {
	u := sampleUser()

	t.Run("APIViewFieldSet", func(t *testing.T) {
		v := userAPIView(u)
		assert.Len(t, v, 5)
		assert.Equal(t, "Brahe", v["surname"])
		assert.Equal(t, "stargazer@example.com", v["email"])
		assert.NotContains(t, v, "id")
		assert.NotContains(t, v, "username")
	})

	t.Run("PageViewForOwner", func(t *testing.T) {
		v := userPageView(u, u.ID)
		assert.Equal(t, "u1", v["id"])
		assert.Equal(t, "stargazer@example.com", v["email"])
	})

	t.Run("PageViewForStranger", func(t *testing.T) {
		v := userPageView(u, "someone-else")
		assert.NotContains(t, v, "email")
		assert.Equal(t, "stargazer", v["username"])
	})

	t.Run("NoViewLeaksPasswordHash", func(t *testing.T) {
		for name, v := range map[string]map[string]any{
			"api":   userAPIView(u),
			"page":  userPageView(u, u.ID),
			"anon":  userPageView(u, ""),
			"other": userPageView(u, "x"),
		} {
			for k, val := range v {
				assert.NotEqual(t, u.PasswordHash, val, "view %s field %s", name, k)
			}
			assert.NotContains(t, v, "password")
			assert.NotContains(t, v, "password_hash")
		}
	})
}

func TestNewsViews(t *testing.T) {
	n := &entity.News{
		ID:        "n1",
		Title:     "Aurora alert",
		Content:   "Strong solar wind.",
		IsPrivate: false,
		PhotoPath: "img/news/n1.jpg",
		UserID:    "u1",
		CreatedAt: time.Now(),
	}

	t.Run("APIViewFieldSet", func(t *testing.T) {
		v := newsAPIView(n, "Tycho")
		assert.Len(t, v, 5)
		assert.Equal(t, "Tycho", v["author"])
		assert.NotContains(t, v, "id")
		assert.NotContains(t, v, "user_id")
	})

	t.Run("PageViewOwnership", func(t *testing.T) {
		assert.Equal(t, true, newsPageView(n, "Tycho", "u1")["is_owner"])
		assert.Equal(t, false, newsPageView(n, "Tycho", "u2")["is_owner"])
		assert.Equal(t, false, newsPageView(n, "Tycho", "")["is_owner"])
	})
}

func TestCatalogViews(t *testing.T) {
	s := &entity.SpaceSystem{
		ID:        "s1",
		Name:      "Kepler-90",
		Galaxy:    "Milky Way",
		About:     "eight planets",
		CreatorID: "u1",
	}
	o := &entity.SpaceObject{
		ID:         "o1",
		Name:       "Kepler-90i",
		SpaceType:  "planet",
		Radius:     1.32,
		Atmosphere: "unknown",
		ImagePath:  "img/kepler-90/o1.png",
		SystemID:   "s1",
		CreatorID:  "u1",
	}

	t.Run("SystemAPIViewFieldSet", func(t *testing.T) {
		v := systemAPIView(s, "Tycho")
		assert.Len(t, v, 3)
		assert.NotContains(t, v, "id")
		assert.NotContains(t, v, "creator_id")
	})

	t.Run("ObjectAPIViewHidesAuthorship", func(t *testing.T) {
		v := objectAPIView(o)
		assert.NotContains(t, v, "creator_id")
		assert.NotContains(t, v, "author")
		assert.Equal(t, "img/kepler-90/o1.png", v["image_path"])
	})

	t.Run("ObjectPageViewExtends", func(t *testing.T) {
		v := objectPageView(o, "Tycho", "u1")
		assert.Equal(t, "o1", v["id"])
		assert.Equal(t, "unknown", v["atmosphere"])
		assert.Equal(t, true, v["is_owner"])
	})
}
