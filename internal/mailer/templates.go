package mailer

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

// mailContext carries every field the two templates can reference. Optional
// fields render conditionally.
type mailContext struct {
	Reference       string
	FirstName       string
	Surname         string
	Email           string
	StudentID       string
	Course          string
	PrintSize       string
	PrintDimensions string
	PaperType       string
	Quantity        int
	Price           string
	Notes           string
	SenderName      string
	UniversityName  string
}

var receiptPlainTmpl = texttemplate.Must(texttemplate.New("receipt_plain").Parse(`Print Request Received - {{.Reference}}

Dear {{.FirstName}},

Thank you for submitting your print request. We have received your order and it is now in our queue.

Your Reference Number: {{.Reference}}

Please keep this reference number safe - you will need it when collecting your prints.

IMPORTANT: Don't forget to upload your files! If you haven't already, please upload your print files to the upload folder linked on the confirmation page. Include your reference number when uploading.

ORDER DETAILS
-------------
Print Size: {{.PrintSize}}{{if .PrintDimensions}} ({{.PrintDimensions}}){{end}}
Paper Type: {{.PaperType}}
Quantity: {{.Quantity}}
Estimated Price: {{.Price}}

YOUR DETAILS
------------
Name: {{.FirstName}} {{.Surname}}
Student ID: {{.StudentID}}
Course: {{.Course}}
{{if .Notes}}
ADDITIONAL NOTES
----------------
{{.Notes}}
{{end}}
WHAT HAPPENS NEXT?
------------------
1. Our technicians will review your request and uploaded files
2. Your prints will be produced (typically 2-3 working days)
3. You will receive an email when your prints are ready for collection
4. Collect your prints from the Digital Print room and make payment

If you have any questions, please reply to this email.

Best regards,
{{.SenderName}} Team

{{.UniversityName}}
Harrow Campus - Digital Print Services
`))

var receiptHTMLTmpl = htmltemplate.Must(htmltemplate.New("receipt_html").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #1e3a5f; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background: #f9f9f9; }
    .reference { background: #1e3a5f; color: white; padding: 15px; text-align: center;
                 font-size: 24px; font-family: monospace; margin: 20px 0; }
    .details { background: white; padding: 15px; border-left: 4px solid #1e3a5f; margin: 15px 0; }
    .details table { width: 100%; border-collapse: collapse; }
    .details td { padding: 8px 0; }
    .details td:first-child { font-weight: bold; width: 40%; }
    .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
    .important { background: #fff3cd; border: 1px solid #ffc107; padding: 15px; margin: 15px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Print Request Received</h1>
      <p>{{.UniversityName}} - {{.SenderName}}</p>
    </div>
    <div class="content">
      <p>Dear {{.FirstName}},</p>
      <p>Thank you for submitting your print request. We have received your order and it is now in our queue.</p>
      <p><strong>Your Reference Number:</strong></p>
      <div class="reference">{{.Reference}}</div>
      <p>Please keep this reference number safe - you will need it when collecting your prints.</p>
      <div class="important">
        <strong>Important: Don't forget to upload your files!</strong><br>
        If you haven't already, please upload your print files to the upload folder linked on the confirmation page. Include your reference number when uploading.
      </div>
      <div class="details">
        <h3>Order Details</h3>
        <table>
          <tr><td>Print Size:</td><td>{{.PrintSize}}{{if .PrintDimensions}} ({{.PrintDimensions}}){{end}}</td></tr>
          <tr><td>Paper Type:</td><td>{{.PaperType}}</td></tr>
          <tr><td>Quantity:</td><td>{{.Quantity}}</td></tr>
          <tr><td>Estimated Price:</td><td>{{.Price}}</td></tr>
        </table>
      </div>
      <div class="details">
        <h3>Your Details</h3>
        <table>
          <tr><td>Name:</td><td>{{.FirstName}} {{.Surname}}</td></tr>
          <tr><td>Student ID:</td><td>{{.StudentID}}</td></tr>
          <tr><td>Course:</td><td>{{.Course}}</td></tr>
        </table>
      </div>
      {{if .Notes}}
      <div class="details">
        <h3>Additional Notes</h3>
        <p>{{.Notes}}</p>
      </div>
      {{end}}
      <h3>What Happens Next?</h3>
      <ol>
        <li>Our technicians will review your request and uploaded files</li>
        <li>Your prints will be produced (typically 2-3 working days)</li>
        <li>You will receive an email when your prints are ready for collection</li>
        <li>Collect your prints from the Digital Print room and make payment</li>
      </ol>
      <p>If you have any questions about your order, please reply to this email or contact us directly.</p>
      <p>Best regards,<br><strong>{{.SenderName}} Team</strong></p>
    </div>
    <div class="footer">
      <p>{{.UniversityName}}<br>Harrow Campus - Digital Print Services</p>
    </div>
  </div>
</body>
</html>
`))

var readyPlainTmpl = texttemplate.Must(texttemplate.New("ready_plain").Parse(`Your Prints Are Ready! - {{.Reference}}

Dear {{.FirstName}},

Great news! Your print order is now ready for collection.

Your Reference Number: {{.Reference}}

ORDER SUMMARY
-------------
Print Size: {{.PrintSize}}
Paper Type: {{.PaperType}}
Quantity: {{.Quantity}}
Amount Due: {{.Price}}

COLLECTION INFORMATION
----------------------
Please collect your prints from the Digital Print Room at Harrow Campus.

Remember to bring:
- Your reference number: {{.Reference}}
- Your student ID card
- Payment ({{.Price}})

If you have any questions, please reply to this email.

Best regards,
{{.SenderName}} Team

{{.UniversityName}}
Harrow Campus - Digital Print Services
`))

var readyHTMLTmpl = htmltemplate.Must(htmltemplate.New("ready_html").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #28a745; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background: #f9f9f9; }
    .reference { background: #1e3a5f; color: white; padding: 15px; text-align: center;
                 font-size: 24px; font-family: monospace; margin: 20px 0; }
    .details { background: white; padding: 15px; border-left: 4px solid #28a745; margin: 15px 0; }
    .details table { width: 100%; border-collapse: collapse; }
    .details td { padding: 8px 0; }
    .details td:first-child { font-weight: bold; width: 40%; }
    .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Your Prints Are Ready!</h1>
      <p>{{.UniversityName}} - {{.SenderName}}</p>
    </div>
    <div class="content">
      <p>Dear {{.FirstName}},</p>
      <p>Great news! Your print order is now ready for collection.</p>
      <p><strong>Your Reference Number:</strong></p>
      <div class="reference">{{.Reference}}</div>
      <div class="details">
        <h3>Order Summary</h3>
        <table>
          <tr><td>Print Size:</td><td>{{.PrintSize}}</td></tr>
          <tr><td>Paper Type:</td><td>{{.PaperType}}</td></tr>
          <tr><td>Quantity:</td><td>{{.Quantity}}</td></tr>
          <tr><td>Amount Due:</td><td>{{.Price}}</td></tr>
        </table>
      </div>
      <h3>Collection Information</h3>
      <p>Please collect your prints from the <strong>Digital Print Room</strong> at Harrow Campus.</p>
      <p>Remember to bring:</p>
      <ul>
        <li>Your reference number: <strong>{{.Reference}}</strong></li>
        <li>Your student ID card</li>
        <li>Payment ({{.Price}})</li>
      </ul>
      <p>If you have any questions, please reply to this email or contact us directly.</p>
      <p>Best regards,<br><strong>{{.SenderName}} Team</strong></p>
    </div>
    <div class="footer">
      <p>{{.UniversityName}}<br>Harrow Campus - Digital Print Services</p>
    </div>
  </div>
</body>
</html>
`))
