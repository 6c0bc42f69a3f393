package response

// SuccessResponse representa uma resposta de sucesso da API
type SuccessResponse struct {
	Message string `json:"message" example:"Operacao realizada com sucesso"`
}

// ErrorResponse representa uma resposta de erro da API
type ErrorResponse struct {
	// Codigo do erro para tratamento programatico
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Mensagem legivel do erro
	// example: Erro de validacao dos dados
	Message string `json:"message"`

	// Detalhes adicionais do erro (opcional)
	// example: o campo data deve estar no formato YYYY-MM-DD
	Details string `json:"details,omitempty"`
}

// TokenResponse representa a resposta com os tokens de autenticacao
type TokenResponse struct {
	// Token JWT de acesso aos endpoints protegidos
	AccessToken string `json:"access_token"`

	// Token JWT para renovar o access token
	RefreshToken string `json:"refresh_token"`
}
