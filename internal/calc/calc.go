// Package calc は身体指標からカロリー目標を算出する純粋関数群を提供する。
// すべての関数は決定的でI/Oを行わず、数値入力に対して常に値を返す。
package calc

// 活動レベルの係数。
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// 目標の種別。
const (
	GoalWeightLoss = "weight_loss"
	GoalMuscleGain = "muscle_gain"
)

// activityMultipliers は活動レベルごとのTDEE係数。
var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// defaultActivityMultiplier は不明な活動レベルに適用する係数（moderate相当）。
const defaultActivityMultiplier = 1.55

// BMI は体重(kg)と身長(cm)からBody Mass Indexを算出する。
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return weightKg / (h * h)
}

// BMICategory はBMI値の区分を返す。
// 境界は18.5/24.9/29.9の厳密な未満比較。標準的な臨床定義とは
// わずかにずれるが、既存クライアントの表示と揃えるため維持する。
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 24.9:
		return "Normal weight"
	case bmi < 29.9:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMR はMifflin-St Jeor式で基礎代謝量を算出する。性別で分岐する。
func BMR(sex string, weightKg, heightCm float64, age float64) float64 {
	if sex == "male" {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
}

// TDEE はBMRに活動レベル係数を掛けた総消費カロリーを返す。
// 不明な活動レベルはmoderate相当（1.55）として扱う。
func TDEE(bmr float64, activityLevel string) float64 {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = defaultActivityMultiplier
	}
	return bmr * multiplier
}

// TargetCalories は目標に応じてTDEEを調整した目標カロリーを返す。
// weight_lossは-500、muscle_gainは+500、それ以外は調整なし。
func TargetCalories(tdee float64, goal string) float64 {
	switch goal {
	case GoalWeightLoss:
		return tdee - 500
	case GoalMuscleGain:
		return tdee + 500
	default:
		return tdee
	}
}
