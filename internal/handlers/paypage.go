package handlers

import (
	"fmt"
	"html"
)

// payPage renders the scan-to-pay page. The QR image is drawn client-side
// from the qr_code URL so no extra asset service is involved.
func payPage(orderID, qrCode, amount, subject string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>扫码支付</title>
<style>
body { font-family: sans-serif; text-align: center; padding: 2em; }
.card { display: inline-block; border: 1px solid #ddd; border-radius: 8px; padding: 2em; }
.amount { font-size: 2em; color: #f60; }
.qr a { word-break: break-all; }
</style>
</head>
<body>
<div class="card">
  <h1>%s</h1>
  <p class="amount">¥ %s</p>
  <p>订单号：%s</p>
  <div class="qr" id="qr"></div>
  <p><a href="%s">打开支付宝支付</a></p>
  <p>请使用支付宝扫一扫完成支付</p>
</div>
<script src="https://cdn.jsdelivr.net/npm/qrcodejs@1.0.0/qrcode.min.js"></script>
<script>new QRCode(document.getElementById("qr"), %q);</script>
</body>
</html>`,
		html.EscapeString(subject),
		html.EscapeString(amount),
		html.EscapeString(orderID),
		html.EscapeString(qrCode),
		qrCode,
	)
}
