package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Типизированные критерии сегментов вместо произвольных словарей:
// одно значение на критерий, тип значения задан явно и валидируется

type ValueKind string

const (
	KindNumber ValueKind = "number"
	KindString ValueKind = "string"
	KindBool   ValueKind = "bool"
	KindTime   ValueKind = "time"
)

// Один критерий: поле, оператор, типизированное значение
type Criterion struct {
	Field    string          `bson:"field" json:"field"`
	Operator string          `bson:"operator" json:"operator"`
	Kind     ValueKind       `bson:"kind" json:"kind"`
	Number   decimal.Decimal `bson:"number,omitempty" json:"number,omitempty"`
	String   string          `bson:"string,omitempty" json:"string,omitempty"`
	Bool     bool            `bson:"bool,omitempty" json:"bool,omitempty"`
	Time     time.Time       `bson:"time,omitempty" json:"time,omitempty"`
}

// Критерии сегмента: Include - AND, Exclude - OR
type SegmentCriteria struct {
	Include []Criterion `bson:"include,omitempty" json:"include,omitempty"`
	Exclude []Criterion `bson:"exclude,omitempty" json:"exclude,omitempty"`
}

// Типизированное свойство события
type Property struct {
	Key    string          `bson:"key" json:"key"`
	Kind   ValueKind       `bson:"kind" json:"kind"`
	Number decimal.Decimal `bson:"number,omitempty" json:"number,omitempty"`
	String string          `bson:"string,omitempty" json:"string,omitempty"`
	Bool   bool            `bson:"bool,omitempty" json:"bool,omitempty"`
	Time   time.Time       `bson:"time,omitempty" json:"time,omitempty"`
}

// Допустимые операторы по типу значения
func (c Criterion) Validate() error {
	if c.Field == "" {
		return fmt.Errorf("criterion field is empty: %w", ErrInvalidInput)
	}
	switch c.Kind {
	case KindNumber, KindTime, KindString:
		switch c.Operator {
		case "=", "!=", ">", "<", ">=", "<=":
			return nil
		}
	case KindBool:
		switch c.Operator {
		case "=", "!=":
			return nil
		}
	default:
		return fmt.Errorf("criterion %s: unknown kind %q: %w", c.Field, c.Kind, ErrInvalidInput)
	}
	return fmt.Errorf("criterion %s: operator %q is not allowed for %s: %w", c.Field, c.Operator, c.Kind, ErrInvalidInput)
}

func (sc SegmentCriteria) Validate() error {
	for _, c := range sc.Include {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range sc.Exclude {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
