package service

import (
	"errors"

	"guild-tracker/internal/repository"
)

var (
	ErrMemberNotFound   = repository.ErrMemberNotFound
	ErrInvalidBossIndex = errors.New("invalid boss index")
	ErrInvalidArgument  = errors.New("invalid argument")
)
