package binder

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/errs"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

type car struct {
	// Declared out of column order on purpose.
	Mileage  float64 `parselo:"col=E,pos=3"`
	Producer string  `parselo:"col=B,pos=0"`
	Year     int     `parselo:"col=d,pos=2"`
	Model    string  `parselo:"col=C,pos=1"`
}

func (car) ParseloRows() (int, int) { return 3, 5 }

type dynamicCar struct {
	Producer string `parselo:"pos=0"`
	Type     string `parselo:"pos=1"`
	Year     int    `parselo:"pos=2"`
	Mileage  int    `parselo:"pos=3"`
}

type phone struct {
	Model    *string    `parselo:"col=B"`
	Brand    *string    `parselo:"col=C"`
	BoughtOn *time.Time `parselo:"col=D"`
}

func (*phone) ParseloRows() (int, int) { return 4, 6 }

type noRows struct {
	Name string `parselo:"col=A"`
}

type noFields struct {
	Field     string
	DateField time.Time
}

func (noFields) ParseloRows() (int, int) { return 1, 2 }

type duplicateColumns struct {
	A string `parselo:"col=B"`
	B string `parselo:"col=b"`
}

func (duplicateColumns) ParseloRows() (int, int) { return 3, 5 }

type gappedColumns struct {
	A string `parselo:"col=B"`
	B string `parselo:"col=D"`
}

func (gappedColumns) ParseloRows() (int, int) { return 3, 5 }

type unsupported struct {
	Tags []string `parselo:"pos=0"`
}

// countingSheet records how many cells were read.
type countingSheet struct {
	models.Sheet
	reads int
}

func (s *countingSheet) Cell(row, col int) (*models.Cell, bool) {
	s.reads++
	return s.Sheet.Cell(row, col)
}

func num(s *models.SheetData, row, col int, v float64, display string) {
	s.Put(models.Cell{Row: row, Col: col, Kind: models.CellNumber, Number: v, Raw: display, Display: display})
}

func date(s *models.SheetData, row, col int, t time.Time) {
	s.Put(models.Cell{Row: row, Col: col, Kind: models.CellNumber, IsDate: true, Time: t, Display: t.Format("1/2/06")})
}

// carsSheet mirrors a "Cars" sheet with a header on row 2 and data on rows 3-5.
func carsSheet() *models.SheetData {
	s := models.NewSheetData("Cars")
	s.PutText(1, 1, "Producer")
	s.PutText(1, 2, "Model")
	s.PutText(1, 3, "Year")
	s.PutText(1, 4, "Mileage")

	rows := []struct {
		producer, model string
		year, mileage   float64
	}{
		{"Opel", "Astra", 2010, 10000},
		{"Dacia", "Logan", 2015, 55000.5},
		{"BMW", "X5", 2019, 1200},
	}
	for i, r := range rows {
		s.PutText(2+i, 1, r.producer)
		s.PutText(2+i, 2, r.model)
		num(s, 2+i, 3, r.year, "")
		num(s, 2+i, 4, r.mileage, "")
	}
	return s
}

func phonesSheet() *models.SheetData {
	s := models.NewSheetData("Phones")
	s.PutText(3, 1, "iPhone 8")
	s.PutText(3, 2, "Apple")
	s.PutText(4, 2, "Samsung")
	date(s, 4, 3, time.Date(2017, 8, 10, 0, 0, 0, 0, time.UTC))
	s.PutText(5, 1, "OnePlus")
	date(s, 5, 3, time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC))
	return s
}

func newBinder() *Binder {
	return New(convert.NewRegistry())
}

func TestDecodeStatic(t *testing.T) {
	cars, err := DecodeStatic[car](newBinder(), carsSheet())
	require.NoError(t, err)
	require.Len(t, cars, 3)

	assert.Equal(t, car{Producer: "Opel", Model: "Astra", Year: 2010, Mileage: 10000}, cars[0])
	assert.Equal(t, car{Producer: "Dacia", Model: "Logan", Year: 2015, Mileage: 55000.5}, cars[1])
	assert.Equal(t, "X5", cars[2].Model)
}

func TestDecodeStaticNullableFields(t *testing.T) {
	phones, err := DecodeStatic[phone](newBinder(), phonesSheet())
	require.NoError(t, err)
	require.Len(t, phones, 3)

	iphone := phones[0]
	require.NotNil(t, iphone.Model)
	assert.Equal(t, "iPhone 8", *iphone.Model)
	assert.Equal(t, "Apple", *iphone.Brand)
	assert.Nil(t, iphone.BoughtOn)

	samsung := phones[1]
	assert.Nil(t, samsung.Model)
	assert.Equal(t, "Samsung", *samsung.Brand)
	assert.Equal(t, time.Date(2017, 8, 10, 0, 0, 0, 0, time.UTC), *samsung.BoughtOn)

	onePlus := phones[2]
	assert.Equal(t, "OnePlus", *onePlus.Model)
	assert.Nil(t, onePlus.Brand)
	assert.Equal(t, time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC), *onePlus.BoughtOn)
}

func TestDecodeDynamic(t *testing.T) {
	region := models.MustRegion(3, 5, "B", "E")
	cars, err := DecodeDynamic[dynamicCar](newBinder(), carsSheet(), region)
	require.NoError(t, err)
	require.Len(t, cars, 3)

	assert.Equal(t, dynamicCar{Producer: "Opel", Type: "Astra", Year: 2010, Mileage: 10000}, cars[0])
	assert.Equal(t, 55000, cars[1].Mileage, "stored numbers are truncated")
}

func TestDecodeDynamicPointerRecords(t *testing.T) {
	cars, err := DecodeDynamic[*car](newBinder(), carsSheet(), models.MustRegion(4, 4, "B", "E"))
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Dacia", cars[0].Producer)
	assert.Equal(t, 2015, cars[0].Year)
}

func TestDecodeDynamicArityMismatch(t *testing.T) {
	for _, region := range []models.Region{
		models.MustRegion(3, 5, "B", "D"),
		models.MustRegion(3, 5, "B", "I"),
	} {
		sheet := &countingSheet{Sheet: carsSheet()}
		cars, err := DecodeDynamic[dynamicCar](newBinder(), sheet, region)
		require.ErrorIs(t, err, errs.ErrFieldColumnCountMismatch)
		assert.Nil(t, cars)

		var ae *errs.ArityError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, 4, ae.Fields)
		assert.Equal(t, region.ColumnCount(), ae.Columns)
		assert.Zero(t, sheet.reads, "no row is read before the arity check")
	}
}

func TestDecodeStaticConfigurationErrors(t *testing.T) {
	b := newBinder()

	_, err := DecodeStatic[noRows](b, carsSheet())
	assert.ErrorIs(t, err, errs.ErrMissingRowRange)

	_, err = DecodeStatic[noFields](b, carsSheet())
	assert.ErrorIs(t, err, errs.ErrNoAnnotatedFields)

	_, err = DecodeStatic[duplicateColumns](b, carsSheet())
	assert.ErrorIs(t, err, errs.ErrDuplicateColumnBinding)

	_, err = DecodeStatic[gappedColumns](b, carsSheet())
	assert.ErrorIs(t, err, errs.ErrFieldColumnCountMismatch)
}

func TestDecodeDynamicConfigurationErrors(t *testing.T) {
	b := newBinder()
	region := models.MustRegion(3, 5, "B", "B")

	_, err := DecodeDynamic[noFields](b, carsSheet(), region)
	assert.ErrorIs(t, err, errs.ErrNoAnnotatedFields)

	_, err = DecodeDynamic[unsupported](b, carsSheet(), region)
	assert.ErrorIs(t, err, errs.ErrUnsupportedConversionType)

	_, err = DecodeDynamic[int](b, carsSheet(), region)
	assert.ErrorIs(t, err, errs.ErrNotConstructible)

	_, err = DecodeDynamic[dynamicCar](b, carsSheet(), models.Region{})
	assert.ErrorIs(t, err, errs.ErrInvalidRegionSpec)
}

func TestDecodeOutOfBounds(t *testing.T) {
	s := models.NewSheetData("Long")
	for row := 0; row < 20; row++ {
		for col := 1; col <= 4; col++ {
			s.PutText(row, col, "x")
		}
	}

	_, err := DecodeDynamic[dynamicCar](newBinder(), s, models.MustRegion(2, 30, "B", "E"))
	require.ErrorIs(t, err, errs.ErrRegionOutOfBounds)

	var be *errs.BoundsError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 1, be.MinRow)
	assert.Equal(t, 20, be.MaxRow)
}

func TestDecodePerFieldDefaults(t *testing.T) {
	s := carsSheet()
	s.PutText(6, 1, "Fiat")
	num(s, 6, 3, 2001, "")
	// C7 and E7 are absent.

	cars, err := DecodeDynamic[dynamicCar](newBinder(), s, models.MustRegion(7, 7, "B", "E"))
	require.NoError(t, err)
	require.Len(t, cars, 1)

	assert.Equal(t, "Fiat", cars[0].Producer)
	assert.Equal(t, "", cars[0].Type)
	assert.Equal(t, 2001, cars[0].Year)
	assert.Equal(t, math.MinInt, cars[0].Mileage)
}

func TestDecodeConversionErrorAbortsWithoutPartialOutput(t *testing.T) {
	s := carsSheet()
	s.PutText(3, 3, "twenty fifteen")

	cars, err := DecodeStatic[car](newBinder(), s)
	require.ErrorIs(t, err, errs.ErrNotANumber)
	assert.Nil(t, cars)

	var ce *errs.CellError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 3, ce.Row)
	assert.Equal(t, 3, ce.Col)
	assert.Equal(t, "int", ce.Type)
}

func TestDecodeWithCustomDefaults(t *testing.T) {
	reg := convert.NewRegistry()
	require.NoError(t, convert.WithDefault(reg, convert.Int, 0))

	s := carsSheet()
	s.PutText(6, 1, "Fiat")

	cars, err := DecodeDynamic[dynamicCar](New(reg), s, models.MustRegion(7, 7, "B", "E"))
	require.NoError(t, err)
	assert.Equal(t, 0, cars[0].Year)
	assert.Equal(t, 0, cars[0].Mileage)
}

func TestDecodeConcurrent(t *testing.T) {
	b := newBinder()
	s := carsSheet()

	done := make(chan error)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := DecodeStatic[car](b, s)
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		assert.NoError(t, <-done)
	}
}

type sized struct {
	Small *int8 `parselo:"pos=0"`
	Mid   int32 `parselo:"pos=1"`
	Count uint  `parselo:"pos=2"`
}

func numbersSheet(values ...float64) *models.SheetData {
	s := models.NewSheetData("Sized")
	for col, v := range values {
		if !math.IsNaN(v) {
			num(s, 0, col, v, "")
		}
	}
	return s
}

func TestDecodeNarrowIntegers(t *testing.T) {
	reg := convert.NewRegistry()
	require.NoError(t, convert.WithDefault(reg, convert.Int, 0))
	b := New(reg)
	region := models.MustRegion(1, 1, "A", "C")

	got, err := DecodeDynamic[sized](b, numbersSheet(-128, math.NaN(), 7), region)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Small)
	assert.Equal(t, int8(-128), *got[0].Small)
	assert.Equal(t, int32(0), got[0].Mid)
	assert.Equal(t, uint(7), got[0].Count)

	tests := []struct {
		name   string
		values []float64
		col    int
		typ    string
	}{
		{"int8 overflow", []float64{300, 1, 1}, 0, "*int8"},
		{"int32 overflow", []float64{1, 3e9, 1}, 1, "int32"},
		{"negative uint", []float64{1, 1, -5}, 2, "uint"},
	}
	for _, tt := range tests {
		got, err := DecodeDynamic[sized](b, numbersSheet(tt.values...), region)
		require.ErrorIs(t, err, errs.ErrValueOutOfRange, tt.name)
		assert.Nil(t, got, tt.name)

		var ce *errs.CellError
		require.ErrorAs(t, err, &ce, tt.name)
		assert.Equal(t, 0, ce.Row, tt.name)
		assert.Equal(t, tt.col, ce.Col, tt.name)
		assert.Equal(t, tt.typ, ce.Type, tt.name)
	}
}

func TestDecodeRejectsDefaultThatDoesNotFit(t *testing.T) {
	// math.MinInt fits neither int32 nor uint.
	_, err := DecodeDynamic[sized](newBinder(), numbersSheet(1, 1, 1), models.MustRegion(1, 1, "A", "C"))
	require.ErrorIs(t, err, errs.ErrUnsupportedConversionType)
	assert.ErrorIs(t, err, errs.ErrValueOutOfRange)

	var te *errs.TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Mid", te.Field)
}

type Engine struct {
	Power int `parselo:"pos=1"`
}

type withEngine struct {
	Name string `parselo:"pos=0"`
	*Engine
}

type engine struct {
	Power int `parselo:"pos=1"`
}

type withHiddenEngine struct {
	Name string `parselo:"pos=0"`
	*engine
}

func TestDecodeEmbeddedPointer(t *testing.T) {
	s := models.NewSheetData("Engines")
	s.PutText(0, 0, "V8")
	num(s, 0, 1, 450, "")
	region := models.MustRegion(1, 1, "A", "B")

	got, err := DecodeDynamic[withEngine](newBinder(), s, region)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "V8", got[0].Name)
	require.NotNil(t, got[0].Engine)
	assert.Equal(t, 450, got[0].Power)

	_, err = DecodeDynamic[withHiddenEngine](newBinder(), s, region)
	assert.ErrorIs(t, err, errs.ErrNotConstructible)
}
