package model

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var tUint64 = reflect.TypeOf(uint64(0))

// Registry is the bson registry of the ledger collections. Amounts are
// uint64 and are stored as decimal strings, since BSON has no unsigned
// 64-bit type. Decoding also accepts the numeric types aggregations produce.
func Registry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tUint64, bsoncodec.ValueEncoderFunc(encodeUint64))
	reg.RegisterTypeDecoder(tUint64, bsoncodec.ValueDecoderFunc(decodeUint64))
	return reg
}

func encodeUint64(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if val.Kind() != reflect.Uint64 {
		return bsoncodec.ValueEncoderError{Name: "encodeUint64", Kinds: []reflect.Kind{reflect.Uint64}, Received: val}
	}
	return vw.WriteString(strconv.FormatUint(val.Uint(), 10))
}

func decodeUint64(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Kind() != reflect.Uint64 {
		return bsoncodec.ValueDecoderError{Name: "decodeUint64", Kinds: []reflect.Kind{reflect.Uint64}, Received: val}
	}

	var (
		u   uint64
		err error
	)
	switch vr.Type() {
	case bsontype.String:
		var s string
		if s, err = vr.ReadString(); err != nil {
			return err
		}
		if u, err = strconv.ParseUint(s, 10, 64); err != nil {
			return fmt.Errorf("invalid stored amount %q: %w", s, err)
		}
	case bsontype.Int32:
		var i int32
		if i, err = vr.ReadInt32(); err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative stored amount %d", i)
		}
		u = uint64(i)
	case bsontype.Int64:
		var i int64
		if i, err = vr.ReadInt64(); err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative stored amount %d", i)
		}
		u = uint64(i)
	case bsontype.Decimal128:
		d, err := vr.ReadDecimal128()
		if err != nil {
			return err
		}
		if u, err = decimalToUint64(d.BigInt()); err != nil {
			return err
		}
	case bsontype.Null:
		if err = vr.ReadNull(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode %v into an amount", vr.Type())
	}

	val.SetUint(u)
	return nil
}

// decimalToUint64 converts the coefficient and exponent of a Decimal128
// into an integer amount.
func decimalToUint64(coefficient *big.Int, exp int, err error) (uint64, error) {
	if err != nil {
		return 0, fmt.Errorf("invalid decimal amount: %w", err)
	}

	ten := big.NewInt(10)
	for ; exp > 0; exp-- {
		coefficient.Mul(coefficient, ten)
	}
	for ; exp < 0; exp++ {
		var rem big.Int
		coefficient.QuoRem(coefficient, ten, &rem)
		if rem.Sign() != 0 {
			return 0, fmt.Errorf("decimal amount is not an integer")
		}
	}

	if coefficient.Sign() < 0 || !coefficient.IsUint64() {
		return 0, fmt.Errorf("decimal amount %s out of range", coefficient)
	}
	return coefficient.Uint64(), nil
}
