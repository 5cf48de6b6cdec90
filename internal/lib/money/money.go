// Package money выполняет преобразование денежных сумм между внутренним
// представлением (филсы, 1 AED = 100 филсов, целые числа) и внешним
// (дирхамы с двумя знаками после запятой в JSON).
//
// Хранилище всегда оперирует филсами; перевод в дирхамы происходит только
// на границе API, чтобы исключить накопление ошибок округления.
package money

import "math"

// ToMinor переводит сумму в дирхамах в филсы.
// Округление до ближайшего целого защищает от двоичной погрешности float64
// при обратном разборе значений вида 299.00.
func ToMinor(major float64) int64 {
	return int64(math.Round(major * 100))
}

// ToMajor переводит филсы в дирхамы.
func ToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// PtrToMinor — то же, что ToMinor, для опциональных сумм.
func PtrToMinor(major *float64) *int64 {
	if major == nil {
		return nil
	}
	v := ToMinor(*major)
	return &v
}

// PtrToMajor — то же, что ToMajor, для опциональных сумм.
func PtrToMajor(minor *int64) *float64 {
	if minor == nil {
		return nil
	}
	v := ToMajor(*minor)
	return &v
}
