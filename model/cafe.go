package model

import (
	"context"
	"reflect"
	"sync"

	"gorm.io/gorm/schema"
)

type Cafe struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"column:name;size:250;uniqueIndex;not null" json:"name"`
	MapURL       string  `gorm:"column:map_url;size:500;not null" json:"map_url"`
	ImgURL       string  `gorm:"column:img_url;size:500;not null" json:"img_url"`
	Location     string  `gorm:"column:location;size:250;not null;index" json:"location"`
	Seats        string  `gorm:"column:seats;size:250;not null" json:"seats"`
	HasToilet    bool    `gorm:"column:has_toilet;not null" json:"has_toilet"`
	HasWifi      bool    `gorm:"column:has_wifi;not null" json:"has_wifi"`
	HasSockets   bool    `gorm:"column:has_sockets;not null" json:"has_sockets"`
	CanTakeCalls bool    `gorm:"column:can_take_calls;not null" json:"can_take_calls"`
	CoffeePrice  *string `gorm:"column:coffee_price;size:250" json:"coffee_price"`
}

func (Cafe) TableName() string { return "cafe" }

var cafeSchema = sync.OnceValue(func() *schema.Schema {
	s, err := schema.Parse(&Cafe{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		panic("model: cannot parse cafe schema: " + err.Error())
	}
	return s
})

// Columns returns the cafe column names in declaration order.
func Columns() []string {
	fields := cafeSchema().Fields
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.DBName != "" {
			cols = append(cols, f.DBName)
		}
	}
	return cols
}

// ToMap converts the cafe into a column name -> value map. Nil pointers become nil.
// Maps carry no order; Columns gives the declared column order.
func (c Cafe) ToMap() map[string]interface{} {
	rv := reflect.ValueOf(&c).Elem()
	out := make(map[string]interface{}, len(cafeSchema().Fields))
	for _, f := range cafeSchema().Fields {
		if f.DBName == "" {
			continue
		}
		v, _ := f.ValueOf(context.Background(), rv)
		out[f.DBName] = deref(v)
	}
	return out
}

func deref(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}

// ToMaps converts cafes keeping their order.
func ToMaps(cafes []Cafe) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(cafes))
	for _, c := range cafes {
		out = append(out, c.ToMap())
	}
	return out
}
