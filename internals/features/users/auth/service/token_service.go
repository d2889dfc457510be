package service

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "github.com/abdulaziz27/fermata-backend/internals/features/users/auth/model"
	userModel "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
	helper "github.com/abdulaziz27/fermata-backend/internals/helpers"
)

/* ==========================
   LOGOUT
========================== */

// Logout memasukkan access token aktif ke blacklist sampai masa berlakunya
// habis. Refresh token tersimpan ikut dicabut.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tokenString, _ := c.Locals("access_token").(string)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}

	// ambil exp dari klaim supaya entri blacklist bisa dibersihkan scheduler
	expiredAt := nowUTC().Add(accessTTLDefault)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	if err := db.Create(&authModel.TokenBlacklistModel{
		Token:     tokenString,
		ExpiredAt: expiredAt,
	}).Error; err != nil {
		low := strings.ToLower(err.Error())
		// token sudah pernah di-blacklist: logout tetap dianggap sukses
		if !strings.Contains(low, "duplicate key") && !strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
		}
	}

	if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			if err := db.Where("user_id = ?", userID).
				Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[WARN] Gagal hapus refresh token user %s: %v", userID, err)
			}
		}
	}

	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: nowUTC().Add(-time.Hour), Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: nowUTC().Add(-time.Hour), Path: "/"})

	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   REFRESH TOKEN
========================== */

// RefreshToken memvalidasi refresh JWT dari cookie, me-rotate hash yang
// tersimpan, lalu menerbitkan pasangan token baru.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (interface{}, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// hash refresh harus dikenal & belum expired
	hash := computeRefreshHash(refreshCookie, refreshSecret)
	var stored authModel.RefreshTokenModel
	if err := db.Where("token_hash = ? AND expires_at > NOW()", hash).
		First(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}

	// ROTATE: hash lama dibuang sebelum pasangan baru terbit
	if err := db.Delete(&authModel.RefreshTokenModel{}, "id = ?", stored.ID).Error; err != nil {
		log.Printf("[WARN] Gagal hapus refresh token lama: %v", err)
	}

	return issueTokens(c, db, user)
}
