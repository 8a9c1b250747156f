// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Currency is the currency of a record.
type Currency int

const (
	// CurrencyBase is the BASE_SUMMARY bucket, the sum of all currencies in the account's base currency.
	CurrencyBase Currency = iota + 1
	// CurrencyCAD is Canadian dollars.
	CurrencyCAD
	// CurrencyUSD is US dollars.
	CurrencyUSD
)

// TradeSide is the side of a trade.
type TradeSide int

const (
	// TradeSideBuy is a buy.
	TradeSideBuy TradeSide = iota + 1
	// TradeSideSell is a sell.
	TradeSideSell
)

// PositionSide is the side of an open position.
type PositionSide int

const (
	// PositionSideLong is a long position.
	PositionSideLong PositionSide = iota + 1
	// PositionSideShort is a short position.
	PositionSideShort
)

// OrderType is the order type of a trade.
type OrderType int

const (
	// OrderTypeLimit is a limit order.
	OrderTypeLimit OrderType = iota + 1
	// OrderTypeMarket is a market order.
	OrderTypeMarket
	// OrderTypeStop is a stop order.
	OrderTypeStop
	// OrderTypeStopLimit is a stop limit order.
	OrderTypeStopLimit
	// OrderTypeMarketOnClose is a market-on-close order.
	OrderTypeMarketOnClose
	// OrderTypeLimitOnClose is a limit-on-close order.
	OrderTypeLimitOnClose
)

// OpenCloseIndicator says whether a trade opened or closed a position.
type OpenCloseIndicator int

const (
	// OpenCloseIndicatorClose closed a position.
	OpenCloseIndicatorClose OpenCloseIndicator = iota + 1
	// OpenCloseIndicatorCloseOpen closed a position and opened one on the other side.
	OpenCloseIndicatorCloseOpen
	// OpenCloseIndicatorOpen opened a position.
	OpenCloseIndicatorOpen
)

// AssetCategory is the asset category of an instrument, such as "STK".
//
// The recognized categories are configured with an AssetCategorySet.
type AssetCategory string

const (
	// AssetCategoryStock is stocks and ETFs.
	AssetCategoryStock AssetCategory = "STK"
	// AssetCategoryCrypto is cryptocurrencies.
	AssetCategoryCrypto AssetCategory = "CRYPTO"
)

// AssetCategorySet is a closed set of recognized asset categories.
//
// An AssetCategorySet is immutable and safe for concurrent use.
type AssetCategorySet struct {
	categories map[string]AssetCategory
}

// NewAssetCategorySet returns a new AssetCategorySet recognizing the given tags.
func NewAssetCategorySet(tags ...string) (AssetCategorySet, error) {
	if len(tags) == 0 {
		return AssetCategorySet{}, errors.New("at least one asset category is required")
	}
	categories := make(map[string]AssetCategory, len(tags))
	for _, tag := range tags {
		if tag == "" {
			return AssetCategorySet{}, errors.New("asset category must not be empty")
		}
		if _, ok := categories[tag]; ok {
			return AssetCategorySet{}, fmt.Errorf("duplicate asset category %q", tag)
		}
		categories[tag] = AssetCategory(tag)
	}
	return AssetCategorySet{categories: categories}, nil
}

// DefaultAssetCategorySet returns the set recognizing STK and CRYPTO.
func DefaultAssetCategorySet() AssetCategorySet {
	return AssetCategorySet{
		categories: map[string]AssetCategory{
			string(AssetCategoryStock):  AssetCategoryStock,
			string(AssetCategoryCrypto): AssetCategoryCrypto,
		},
	}
}

// Parse decodes a tag, failing with an *UnknownEnumValueError for tags outside the set.
func (s AssetCategorySet) Parse(value string) (AssetCategory, error) {
	category, ok := s.categories[value]
	if !ok {
		return "", &UnknownEnumValueError{Enumeration: "asset category", Value: value}
	}
	return category, nil
}

// Tags returns the sorted recognized tags.
func (s AssetCategorySet) Tags() []string {
	return slices.Sorted(maps.Keys(s.categories))
}

// String returns the tag.
func (a AssetCategory) String() string {
	return string(a)
}

// ParseAssetCategory decodes a tag using DefaultAssetCategorySet.
func ParseAssetCategory(value string) (AssetCategory, error) {
	return DefaultAssetCategorySet().Parse(value)
}

// ParseCurrency decodes a currency tag.
func ParseCurrency(value string) (Currency, error) {
	return currencyTable.parse(value)
}

// String returns the canonical tag.
func (c Currency) String() string {
	return currencyTable.tag(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseTradeSide decodes a trade side tag.
func ParseTradeSide(value string) (TradeSide, error) {
	return tradeSideTable.parse(value)
}

// String returns the canonical tag.
func (t TradeSide) String() string {
	return tradeSideTable.tag(t)
}

// MarshalText implements encoding.TextMarshaler.
func (t TradeSide) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParsePositionSide decodes a position side tag.
func ParsePositionSide(value string) (PositionSide, error) {
	return positionSideTable.parse(value)
}

// String returns the canonical tag.
func (p PositionSide) String() string {
	return positionSideTable.tag(p)
}

// MarshalText implements encoding.TextMarshaler.
func (p PositionSide) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParseOrderType decodes an order type tag.
func ParseOrderType(value string) (OrderType, error) {
	return orderTypeTable.parse(value)
}

// String returns the canonical tag.
func (o OrderType) String() string {
	return orderTypeTable.tag(o)
}

// MarshalText implements encoding.TextMarshaler.
func (o OrderType) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOpenCloseIndicator decodes an open/close indicator tag.
func ParseOpenCloseIndicator(value string) (OpenCloseIndicator, error) {
	return openCloseIndicatorTable.parse(value)
}

// String returns the canonical tag.
func (o OpenCloseIndicator) String() string {
	return openCloseIndicatorTable.tag(o)
}

// MarshalText implements encoding.TextMarshaler.
func (o OpenCloseIndicator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// *** PRIVATE ***

var (
	currencyTable = newEnumTable(
		"currency",
		map[string]Currency{
			"BASE_SUMMARY": CurrencyBase,
			"CAD":          CurrencyCAD,
			"USD":          CurrencyUSD,
		},
	)
	tradeSideTable = newEnumTable(
		"trade side",
		map[string]TradeSide{
			"BUY":  TradeSideBuy,
			"SELL": TradeSideSell,
		},
	)
	positionSideTable = newEnumTable(
		"position side",
		map[string]PositionSide{
			"Long":  PositionSideLong,
			"Short": PositionSideShort,
		},
	)
	orderTypeTable = newEnumTable(
		"order type",
		map[string]OrderType{
			"LMT":     OrderTypeLimit,
			"MKT":     OrderTypeMarket,
			"STP":     OrderTypeStop,
			"STP LMT": OrderTypeStopLimit,
			"MOC":     OrderTypeMarketOnClose,
			"LOC":     OrderTypeLimitOnClose,
		},
	)
	openCloseIndicatorTable = newEnumTable(
		"open/close indicator",
		map[string]OpenCloseIndicator{
			"C":   OpenCloseIndicatorClose,
			"C;O": OpenCloseIndicatorCloseOpen,
			"O":   OpenCloseIndicatorOpen,
		},
	)
)

// enumTable is the bidirectional mapping between tags and the variants of one enumeration.
type enumTable[T ~int] struct {
	name       string
	tagToValue map[string]T
	valueToTag map[T]string
}

func newEnumTable[T ~int](name string, tagToValue map[string]T) *enumTable[T] {
	valueToTag := make(map[T]string, len(tagToValue))
	for tag, value := range tagToValue {
		valueToTag[value] = tag
	}
	return &enumTable[T]{
		name:       name,
		tagToValue: tagToValue,
		valueToTag: valueToTag,
	}
}

func (e *enumTable[T]) parse(value string) (T, error) {
	parsed, ok := e.tagToValue[value]
	if !ok {
		return 0, &UnknownEnumValueError{Enumeration: e.name, Value: value}
	}
	return parsed, nil
}

func (e *enumTable[T]) tag(value T) string {
	if tag, ok := e.valueToTag[value]; ok {
		return tag
	}
	return fmt.Sprintf("%s(%d)", e.name, int(value))
}
