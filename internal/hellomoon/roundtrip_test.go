package hellomoon

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enumStrings[E ~string](es []E) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = string(e)
	}
	return out
}

var enumValues = map[reflect.Type][]string{
	reflect.TypeOf(InstructionName("")):   enumStrings(InstructionNames),
	reflect.TypeOf(Market("")):            enumStrings(Markets),
	reflect.TypeOf(Marketplace("")):       enumStrings(Marketplaces),
	reflect.TypeOf(Granularity("")):       enumStrings(Granularities),
	reflect.TypeOf(LendingActionType("")): enumStrings(LendingActionTypes),
	reflect.TypeOf(LiquidityAction("")):   enumStrings(LiquidityActions),
	reflect.TypeOf(Aggregator("")):        enumStrings(Aggregators),
}

// filler sets every field of a value to a distinct non-zero value.
type filler struct {
	t *testing.T
	n int64
}

func (f *filler) next() int64 {
	f.n++
	return f.n
}

func (f *filler) fill(v reflect.Value) {
	if v.Type() == filterType {
		n := f.next()
		switch n % 3 {
		case 0:
			v.Set(reflect.ValueOf(*Exactly(n)))
		case 1:
			v.Set(reflect.ValueOf(*Gt(n)))
		default:
			v.Set(reflect.ValueOf(*Between(n, n+10)))
		}
		return
	}
	if values, ok := enumValues[v.Type()]; ok {
		v.SetString(values[int(f.next())%len(values)])
		return
	}
	switch v.Kind() {
	case reflect.Pointer:
		v.Set(reflect.New(v.Type().Elem()))
		f.fill(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				f.fill(v.Field(i))
			}
		}
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), 2, 2))
		for i := 0; i < 2; i++ {
			f.fill(v.Index(i))
		}
	case reflect.String:
		v.SetString(fmt.Sprintf("v%d", f.next()))
	case reflect.Int, reflect.Int32, reflect.Int64:
		v.SetInt(f.next())
	case reflect.Float64:
		v.SetFloat(float64(f.next()) + 0.5)
	case reflect.Bool:
		v.SetBool(true)
	default:
		f.t.Fatalf("no fill rule for %s", v.Type())
	}
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

func TestEveryRequestRoundTrips(t *testing.T) {
	for _, d := range Catalog() {
		t.Run(d.Name, func(t *testing.T) {
			req := d.NewRequest()
			(&filler{t: t}).fill(reflect.ValueOf(req).Elem())

			b, err := json.Marshal(req)
			require.NoError(t, err)

			var keys map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(b, &keys))
			assert.Len(t, keys, len(d.Fields()), "every field is sent once set")

			got, err := d.DecodeRequest(b)
			require.NoError(t, err)
			assert.Equal(t, req, got)
		})
	}
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

func TestEveryTypedPageRoundTrips(t *testing.T) {
	pages := map[string]any{
		"NFTListing":       &Page[NFTListing]{},
		"Candlestick":      &Page[Candlestick]{},
		"CollectionName":   &Page[CollectionName]{},
		"CollectionMint":   &Page[CollectionMint]{},
		"MetaplexMetadata": &Page[MetaplexMetadata]{},
		"OwnedMint":        &Page[OwnedMint]{},
		"Sale":             &Page[Sale]{},
		"LendingAction":    &Page[LendingAction]{},
		"PoolMetadata":     &Page[PoolMetadata]{},
		"PoolBalance":      &Page[PoolBalance]{},
		"PoolEmission":     &Page[PoolEmission]{},
	}
	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			(&filler{t: t}).fill(reflect.ValueOf(page).Elem())

			b, err := json.Marshal(page)
			require.NoError(t, err)

			got := reflect.New(reflect.TypeOf(page).Elem()).Interface()
			require.NoError(t, decodeStrict(b, got))
			assert.Equal(t, page, got)
		})
	}
}
