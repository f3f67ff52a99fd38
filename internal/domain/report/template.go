package report

const payslipHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f0f4f8;font-family:'Malgun Gothic','Apple SD Gothic Neo',sans-serif;">
<table cellpadding="0" cellspacing="0" border="0" width="100%" style="padding:20px;">
<tr><td align="center">
<table cellpadding="0" cellspacing="0" border="0" width="600" style="max-width:600px;">
<tr>
<td style="background-color:#1e3a5f;border-radius:16px 16px 0 0;padding:30px;text-align:center;">
<h1 style="margin:0;color:#ffffff;font-size:26px;">{{.Period}}</h1>
<p style="margin:8px 0 0 0;color:#a3c4e8;font-size:16px;">급여명세서</p>
</td>
</tr>
<tr>
<td style="background-color:#ffffff;padding:25px;">
<table cellpadding="0" cellspacing="0" border="0" width="100%" style="background-color:#f8fafc;border-radius:12px;">
<tr>
<td width="50%" style="padding:20px;">
<span style="color:#64748b;font-size:12px;">사원코드</span>
<p style="margin:4px 0 0 0;color:#1e293b;font-size:16px;font-weight:700;">{{.EmployeeCode}}</p>
</td>
<td width="50%" style="padding:20px;text-align:right;">
<span style="color:#64748b;font-size:12px;">사원명</span>
<p style="margin:4px 0 0 0;color:#1e293b;font-size:16px;font-weight:700;">{{.EmployeeName}}</p>
</td>
</tr>
</table>
</td>
</tr>
<tr>
<td style="background-color:#ffffff;padding:0 25px 25px 25px;">
<table cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e2e8f0;">
<tr><td colspan="2" style="background-color:#16a34a;padding:14px 20px;color:#ffffff;font-weight:700;">지급 내역</td></tr>
{{- range .Payments}}
<tr style="background-color:{{if .Shaded}}#f0fdf4{{else}}#ffffff{{end}};">
<td style="padding:14px 20px;color:#374151;font-size:14px;">{{.Label}}</td>
<td style="padding:14px 20px;text-align:right;color:#1e293b;font-weight:600;font-size:14px;">{{.Amount}}원</td>
</tr>
{{- end}}
<tr style="background-color:#dcfce7;">
<td style="padding:16px 20px;color:#166534;font-weight:700;">{{index .Labels "totalPayment"}}</td>
<td style="padding:16px 20px;text-align:right;color:#166534;font-weight:700;">{{.TotalPayment}}원</td>
</tr>
</table>
</td>
</tr>
<tr>
<td style="background-color:#ffffff;padding:0 25px 25px 25px;">
<table cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e2e8f0;">
<tr><td colspan="2" style="background-color:#dc2626;padding:14px 20px;color:#ffffff;font-weight:700;">공제 내역</td></tr>
{{- range .Deductions}}
<tr style="background-color:{{if .Shaded}}#fef2f2{{else}}#ffffff{{end}};">
<td style="padding:14px 20px;color:#374151;font-size:14px;">{{.Label}}</td>
<td style="padding:14px 20px;text-align:right;color:#1e293b;font-weight:600;font-size:14px;">{{.Amount}}원</td>
</tr>
{{- end}}
<tr style="background-color:#fee2e2;">
<td style="padding:16px 20px;color:#dc2626;font-weight:700;">{{index .Labels "totalDeduction"}}</td>
<td style="padding:16px 20px;text-align:right;color:#dc2626;font-weight:700;">{{.TotalDeduction}}원</td>
</tr>
</table>
</td>
</tr>
<tr>
<td style="background-color:#ffffff;padding:0 25px 30px 25px;">
<table cellpadding="0" cellspacing="0" border="0" width="100%" style="background-color:#1e3a5f;border-radius:16px;">
<tr><td style="padding:30px;text-align:center;">
<p style="margin:0 0 8px 0;color:#a3c4e8;font-size:14px;">{{index .Labels "netPayment"}}</p>
<p style="margin:0;color:#ffffff;font-size:42px;font-weight:800;">{{.NetPayment}}<span style="font-size:24px;">원</span></p>
</td></tr>
</table>
</td>
</tr>
<tr>
<td style="background-color:#f8fafc;border-radius:0 0 16px 16px;padding:25px;text-align:center;border-top:1px solid #e2e8f0;">
<p style="margin:0 0 8px 0;color:#64748b;font-size:13px;">본 메일은 자동 발송되었습니다.</p>
<p style="margin:0;color:#94a3b8;font-size:12px;">문의사항은 인사팀으로 연락 바랍니다.</p>
</td>
</tr>
</table>
</td></tr>
</table>
</body>
</html>
`
