package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github-agent/internal/auth"
)

func (uc *implUseCase) AuthorizeURL(ctx context.Context, input auth.AuthorizeInput) (auth.AuthorizeOutput, error) {
	if uc.oauth.ClientID == "" {
		return auth.AuthorizeOutput{}, auth.ErrNotConfigured
	}

	conf := uc.oauth
	if input.RedirectURI != "" {
		conf.RedirectURL = input.RedirectURI
	}

	state := strings.ReplaceAll(uuid.NewString(), "-", "")
	uc.states.Add(state, conf.RedirectURL)

	return auth.AuthorizeOutput{
		URL:   conf.AuthCodeURL(state),
		State: state,
	}, nil
}

func (uc *implUseCase) Exchange(ctx context.Context, input auth.ExchangeInput) (auth.ExchangeOutput, error) {
	if uc.oauth.ClientID == "" || uc.oauth.ClientSecret == "" {
		return auth.ExchangeOutput{}, auth.ErrNotConfigured
	}
	if input.Code == "" {
		return auth.ExchangeOutput{}, auth.ErrMissingCode
	}

	redirectURL, ok := uc.states.Get(input.State)
	if !ok {
		return auth.ExchangeOutput{}, auth.ErrInvalidState
	}
	uc.states.Remove(input.State)

	conf := uc.oauth
	conf.RedirectURL = redirectURL

	if uc.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, uc.httpClient)
	}

	tok, err := conf.Exchange(ctx, input.Code)
	if err != nil {
		uc.l.Errorf(ctx, "internal.auth.usecase.Exchange: %v", err)
		return auth.ExchangeOutput{}, fmt.Errorf("%w: %v", auth.ErrExchangeFailed, err)
	}

	scope, _ := tok.Extra("scope").(string)
	return auth.ExchangeOutput{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Scope:       scope,
	}, nil
}
