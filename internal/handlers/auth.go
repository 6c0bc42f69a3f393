package handlers

import (
	"net/http"
	"os"
	"time"

	"gestor-visitas/internal/models"
	"gestor-visitas/internal/response"
	"gestor-visitas/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	AccessSecret  = []byte(os.Getenv("JWT_ACCESS_SECRET"))
	refreshSecret = []byte(os.Getenv("JWT_REFRESH_SECRET"))
)

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3"`
	Password     string `json:"password" binding:"required,min=6"`
	NomeExibicao string `json:"nome_exibicao"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary		Registro de usuário
// @Description	Cadastra um novo usuário do sistema
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			usuario	body		RegisterRequest				true	"Dados do usuário"
// @Success		201		{object}	response.SuccessResponse	"Usuário criado"
// @Failure		400		{object}	response.ErrorResponse		"Erro de validação (VALIDATION_ERROR) ou usuário já existe (USERNAME_EXISTS)"
// @Failure		500		{object}	response.ErrorResponse		"Erro do servidor (PASSWORD_HASH_ERROR, DB_ERROR)"
// @Router			/auth/register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}

	var existente models.Usuario
	if err := storage.DB.Where("username = ?", req.Username).First(&existente).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "USERNAME_EXISTS",
			Message: "Já existe um usuário com este nome",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "PASSWORD_HASH_ERROR",
			Message: "Erro ao gerar hash da senha",
		})
		return
	}

	nomeExibicao := req.NomeExibicao
	if nomeExibicao == "" {
		nomeExibicao = req.Username
	}
	usuario := models.Usuario{
		Username:     req.Username,
		PasswordHash: string(hash),
		NomeExibicao: nomeExibicao,
		Ativo:        true,
	}

	if err := storage.DB.Create(&usuario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao criar usuário",
		})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{
		Message: "Usuário registrado com sucesso",
	})
}

// @Summary		Login
// @Description	Autentica o usuário e devolve os tokens
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			usuario	body		LoginRequest			true	"Credenciais"
// @Success		200		{object}	response.TokenResponse	"Autenticado"
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação dos dados (VALIDATION_ERROR)"
// @Failure		401		{object}	response.ErrorResponse	"Credenciais inválidas (INVALID_CREDENTIALS)"
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (TOKEN_GENERATION_ERROR)"
// @Router			/auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}

	var usuario models.Usuario
	if err := storage.DB.Where("username = ? AND ativo = ?", req.Username, true).First(&usuario).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Usuário ou senha incorretos",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Usuário ou senha incorretos",
		})
		return
	}

	accessToken, err := generateToken(usuario.ID, time.Minute*15, AccessSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Erro ao gerar access token",
		})
		return
	}

	refreshToken, err := generateToken(usuario.ID, time.Hour*24*7, refreshSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Erro ao gerar refresh token",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func generateToken(userID uint, duration time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary		Renovação do access token
// @Description	Renova o access token a partir do refresh token
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			refresh_token	body		RefreshTokenRequest		true	"Refresh token"
// @Success		200				{object}	response.TokenResponse	"Tokens renovados"
// @Failure		400				{object}	response.ErrorResponse	"Erro de validação dos dados (VALIDATION_ERROR)"
// @Failure		401				{object}	response.ErrorResponse	"Refresh token inválido (INVALID_REFRESH_TOKEN) ou usuário não encontrado (USER_NOT_FOUND)"
// @Failure		500				{object}	response.ErrorResponse	"Erro do servidor (TOKEN_GENERATION_ERROR)"
// @Router			/auth/refresh [post]
func RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados",
			Details: err.Error(),
		})
		return
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return refreshSecret, nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_REFRESH_TOKEN",
			Message: "Refresh token inválido ou expirado",
		})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_REFRESH_TOKEN",
			Message: "Refresh token inválido ou expirado",
		})
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_REFRESH_TOKEN",
			Message: "Refresh token inválido ou expirado",
		})
		return
	}
	userID := uint(userIDFloat)

	var usuario models.Usuario
	if err := storage.DB.First(&usuario, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado",
		})
		return
	}

	newAccessToken, err := generateToken(usuario.ID, time.Minute*15, AccessSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Erro ao gerar access token",
		})
		return
	}

	newRefreshToken, err := generateToken(userID, time.Hour*24*7, refreshSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Erro ao gerar novo refresh token",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	})
}
