package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
)

// Per-view projection functions. Each surface gets an explicit field list so
// what is exposed where is checkable at compile time; the password hash never
// appears in any of them. The API views keep the fixed machine allow-lists,
// the page views carry the render context for the frontend and may expose
// more to an authenticated owner.

func userAPIView(u *entity.User) gin.H {
	return gin.H{
		"surname": u.Surname,
		"name":    u.Name,
		"age":     u.Age,
		"about":   u.About,
		"email":   u.Email,
	}
}

func userPageView(u *entity.User, viewerID string) gin.H {
	v := gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"name":       u.Name,
		"surname":    u.Surname,
		"age":        u.Age,
		"about":      u.About,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
	}
	if viewerID == u.ID {
		v["email"] = u.Email
	}
	return v
}

func newsAPIView(n *entity.News, authorName string) gin.H {
	return gin.H{
		"title":      n.Title,
		"content":    n.Content,
		"author":     authorName,
		"is_private": n.IsPrivate,
		"photo_path": n.PhotoPath,
	}
}

func newsPageView(n *entity.News, authorName, viewerID string) gin.H {
	return gin.H{
		"id":         n.ID,
		"title":      n.Title,
		"content":    n.Content,
		"author":     authorName,
		"is_private": n.IsPrivate,
		"photo_path": n.PhotoPath,
		"created_at": n.CreatedAt,
		"is_owner":   viewerID != "" && viewerID == n.UserID,
	}
}

func systemAPIView(s *entity.SpaceSystem, creatorName string) gin.H {
	return gin.H{
		"name":   s.Name,
		"galaxy": s.Galaxy,
		"author": creatorName,
	}
}

func systemPageView(s *entity.SpaceSystem, creatorName, viewerID string) gin.H {
	return gin.H{
		"id":         s.ID,
		"name":       s.Name,
		"galaxy":     s.Galaxy,
		"about":      s.About,
		"author":     creatorName,
		"created_at": s.CreatedAt,
		"is_owner":   viewerID != "" && viewerID == s.CreatorID,
	}
}

func objectAPIView(o *entity.SpaceObject) gin.H {
	return gin.H{
		"name":         o.Name,
		"space_type":   o.SpaceType,
		"radius":       o.Radius,
		"period":       o.Period,
		"eccentricity": o.Eccentricity,
		"velocity":     o.Velocity,
		"density":      o.Density,
		"gravity":      o.Gravity,
		"mass":         o.Mass,
		"satellites":   o.Satellites,
		"about":        o.About,
		"image_path":   o.ImagePath,
		"system_id":    o.SystemID,
	}
}

func objectPageView(o *entity.SpaceObject, creatorName, viewerID string) gin.H {
	v := objectAPIView(o)
	v["id"] = o.ID
	v["atmosphere"] = o.Atmosphere
	v["author"] = creatorName
	v["created_at"] = o.CreatedAt
	v["is_owner"] = viewerID != "" && viewerID == o.CreatorID
	return v
}
