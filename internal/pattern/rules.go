package pattern

import "github.com/Veraticus/paysnap/internal/model"

// DefaultAmountRules returns the built-in success-screen layouts.
//
// WeChat prints the currency symbol before the digits (¥88.00); Alipay prints
// the digits followed by the currency word (35.50元). Both may group
// thousands with commas (¥1,288.00).
func DefaultAmountRules() []AmountRule {
	return []AmountRule{
		{
			App:           model.SourceWeChat,
			SuccessMarker: "支付成功",
			AmountPattern: `[¥￥]([0-9][0-9,]*(?:\.[0-9]*)?)`,
		},
		{
			App:           model.SourceAlipay,
			SuccessMarker: "支付成功",
			AmountPattern: `([0-9][0-9,]*(?:\.[0-9]*)?)元`,
		},
	}
}

// DefaultMerchantLabels returns the label texts that precede a payee name.
func DefaultMerchantLabels() []string {
	return []string{
		"商户:", "收款方:", "商家:", "店铺:",
		"商户：", "收款方：", "商家：", "店铺：",
		"商户", "收款方", "商家", "店铺",
	}
}
