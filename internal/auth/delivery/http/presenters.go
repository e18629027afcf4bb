package http

import "github-agent/internal/auth"

type loginReq struct {
	RedirectURI string `form:"redirect_uri"`
}

func (r loginReq) toInput() auth.AuthorizeInput {
	return auth.AuthorizeInput{RedirectURI: r.RedirectURI}
}

type callbackReq struct {
	Code  string `form:"code" binding:"required"`
	State string `form:"state" binding:"required"`
}

func (r callbackReq) toInput() auth.ExchangeInput {
	return auth.ExchangeInput{Code: r.Code, State: r.State}
}

type loginResp struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

func (h *handler) newLoginResp(o auth.AuthorizeOutput) loginResp {
	return loginResp{AuthURL: o.URL, State: o.State}
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

func (h *handler) newTokenResp(o auth.ExchangeOutput) tokenResp {
	return tokenResp{
		AccessToken: o.AccessToken,
		TokenType:   o.TokenType,
		Scope:       o.Scope,
	}
}
