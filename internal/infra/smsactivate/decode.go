package smsactivate

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"numbers-bot/internal/stories/catalog"
)

// decodeCountries keeps the countries in the order the API returned them.
func decodeCountries(data []byte) ([]catalog.Country, error) {
	d := jx.DecodeBytes(data)
	if tt := d.Next(); tt != jx.Object {
		return nil, errors.Errorf("expected object, got %s", tt)
	}

	var countries []catalog.Country
	err := d.Obj(func(d *jx.Decoder, key string) error {
		country, err := decodeCountry(d, key)
		if err != nil {
			return errors.Wrapf(err, "country %q", key)
		}
		countries = append(countries, country)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode countries")
	}

	return countries, nil
}

func decodeCountry(d *jx.Decoder, key string) (catalog.Country, error) {
	var (
		country catalog.Country
		hasID   bool
	)

	err := d.Obj(func(d *jx.Decoder, field string) error {
		var err error
		switch field {
		case "id":
			country.ID, err = decodeID(d)
			hasID = err == nil
		case "eng":
			country.Name, err = d.Str()
		case "visible":
			country.Visible, err = decodeFlag(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", field)
		}
		return nil
	})
	if err != nil {
		return catalog.Country{}, err
	}

	if !hasID {
		return catalog.Country{}, errors.New("missing id")
	}
	if country.Name == "" {
		country.Name = key
	}

	return country, nil
}

func decodePrices(data []byte) (catalog.PriceList, error) {
	d := jx.DecodeBytes(data)

	prices := make(catalog.PriceList)
	switch tt := d.Next(); tt {
	case jx.Object:
	case jx.Array:
		// пустой прайс API отдаёт как []
		if err := d.Arr(func(d *jx.Decoder) error {
			return errors.New("unexpected array element")
		}); err != nil {
			return nil, errors.Wrap(err, "decode prices")
		}
		return prices, nil
	default:
		return nil, errors.Errorf("expected object, got %s", tt)
	}

	err := d.Obj(func(d *jx.Decoder, countryID string) error {
		byService := make(map[catalog.ServiceCode]catalog.Price)
		err := d.Obj(func(d *jx.Decoder, service string) error {
			price, err := decodePrice(d)
			if err != nil {
				return errors.Wrapf(err, "service %q", service)
			}
			byService[catalog.ServiceCode(service)] = price
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "country %q", countryID)
		}
		prices[countryID] = byService
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode prices")
	}

	return prices, nil
}

func decodePrice(d *jx.Decoder) (catalog.Price, error) {
	var (
		price   catalog.Price
		hasCost bool
	)

	err := d.Obj(func(d *jx.Decoder, field string) error {
		var err error
		switch field {
		case "cost":
			price.Cost, err = decodeFloat(d)
			hasCost = err == nil
		case "count":
			price.Count, err = decodeOptionalInt(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", field)
		}
		return nil
	})
	if err != nil {
		return catalog.Price{}, err
	}
	if !hasCost {
		return catalog.Price{}, errors.New("missing cost")
	}

	return price, nil
}

// decodeID accepts both 1 and "1".
func decodeID(d *jx.Decoder) (string, error) {
	switch tt := d.Next(); tt {
	case jx.Number:
		n, err := d.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case jx.String:
		return d.Str()
	default:
		return "", errors.Errorf("unexpected id type %s", tt)
	}
}

// decodeFlag accepts 0/1, booleans and their string forms.
func decodeFlag(d *jx.Decoder) (bool, error) {
	switch tt := d.Next(); tt {
	case jx.Bool:
		return d.Bool()
	case jx.Number:
		n, err := d.Int64()
		if err != nil {
			return false, err
		}
		return n != 0, nil
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true":
			return true, nil
		default:
			return false, nil
		}
	case jx.Null:
		return false, d.Null()
	default:
		return false, errors.Errorf("unexpected flag type %s", tt)
	}
}

func decodeFloat(d *jx.Decoder) (float64, error) {
	switch tt := d.Next(); tt {
	case jx.Number:
		return d.Float64()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	default:
		return 0, errors.Errorf("unexpected number type %s", tt)
	}
}

func decodeOptionalInt(d *jx.Decoder) (*int, error) {
	switch tt := d.Next(); tt {
	case jx.Null:
		return nil, d.Null()
	case jx.Number:
		n, err := d.Int()
		if err != nil {
			return nil, err
		}
		return &n, nil
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		return &n, nil
	default:
		return nil, errors.Errorf("unexpected count type %s", tt)
	}
}
