package models

import "errors"

// Ошибки бизнес-правил и ошибки входных данных разделены:
// ErrInvalidInput - ошибка вызывающей стороны (не заполнены обязательные поля),
// остальные - отказ по правилам домена
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoTouchpoints       = errors.New("no touchpoints")
	ErrIneligibleDeal      = errors.New("deal is not eligible")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	// баланс в базе ушел вперед прочитанного - вызывающая сторона перечитывает и повторяет
	ErrStaleBalance = errors.New("stale balance")
)
