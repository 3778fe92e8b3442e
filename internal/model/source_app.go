// Package model defines the core data structures for the paysnap capture core.
package model

// SourceApp identifies the payment application that produced a UI event.
type SourceApp int

// Known source apps. Unknown is the zero value so an unresolved package never
// aliases a real app.
const (
	SourceUnknown SourceApp = iota
	SourceWeChat
	SourceAlipay
)

// Package identifiers of the supported payment apps.
const (
	WeChatPackage = "com.tencent.mm"
	AlipayPackage = "com.eg.android.AlipayGphone"
)

// SourceAppFromPackage resolves an originating package identifier.
func SourceAppFromPackage(packageID string) SourceApp {
	switch packageID {
	case WeChatPackage:
		return SourceWeChat
	case AlipayPackage:
		return SourceAlipay
	default:
		return SourceUnknown
	}
}

// String returns a stable identifier for logs and storage.
func (s SourceApp) String() string {
	switch s {
	case SourceWeChat:
		return "wechat"
	case SourceAlipay:
		return "alipay"
	default:
		return "unknown"
	}
}

// Channel returns the human-readable payment method label.
func (s SourceApp) Channel() string {
	switch s {
	case SourceWeChat:
		return "微信支付"
	case SourceAlipay:
		return "支付宝"
	default:
		return "其他支付"
	}
}
