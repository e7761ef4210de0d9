package i18n

// Message keys.
const (
	MsgRequired               = "required"
	MsgMinLength              = "min_length"
	MsgInvalidNumber          = "invalid_number"
	MsgNegativeNumber         = "negative_number"
	MsgInvalidInteger         = "invalid_integer"
	MsgMinValue               = "min_value"
	MsgInvalidEmail           = "invalid_email"
	MsgInvalidPhone           = "invalid_phone"
	MsgInvalidURL             = "invalid_url"
	MsgSelectCountryFirst     = "select_country_first"
	MsgSelectGovernorateFirst = "select_governorate_first"
	MsgImageRequired          = "image_required"
	MsgLinksBounds            = "links_bounds"
	MsgServiceTypeRequired    = "service_type_required"
	MsgInvalidServiceType     = "invalid_service_type"
	MsgSelectAtLeastOne       = "select_at_least_one"
	MsgSpecialtyRequired      = "specialty_required"
	MsgInvalidOption          = "invalid_option"
	MsgInvalidDate            = "invalid_date"
	MsgEndBeforeStart         = "end_before_start"
	MsgItemNamesRequired      = "item_names_required"
	MsgInvalidPrice           = "invalid_price"
	MsgPriceRequired          = "price_required"
	MsgPriceUnitRequired      = "price_unit_required"
	MsgTermsRequired          = "terms_required"
	MsgAccuracyRequired       = "accuracy_required"
	MsgKindOfStableRequired   = "kind_of_stable_required"
	MsgNotAuthenticated       = "not_authenticated"
	MsgStableOwnerOnly        = "stable_owner_only"
	MsgStableAlreadyExists    = "stable_already_exists"
	MsgSupplierOnly           = "supplier_only"
	MsgSubmissionFailed       = "submission_failed"
	MsgUploadFailed           = "upload_failed"
	MsgStepInvalid            = "step_invalid"
	MsgSubmitInProgress       = "submit_in_progress"
	MsgNotOnReviewStep        = "not_on_review_step"
	MsgOptionNotAvailable     = "option_not_available"
	MsgGalleryLimit           = "gallery_limit"
	MsgInvalidStatusChange    = "invalid_status_change"
	MsgEducationalOnly        = "educational_only"
	MsgNoStable               = "no_stable"
)

var catalogs = map[string]map[string]string{
	English: {
		MsgRequired:               "This field is required",
		MsgMinLength:              "Must be at least %d characters",
		MsgInvalidNumber:          "Please enter a valid number",
		MsgNegativeNumber:         "The value cannot be negative",
		MsgInvalidInteger:         "Please enter a whole number",
		MsgMinValue:               "The value must be at least %d",
		MsgInvalidEmail:           "Please enter a valid email address",
		MsgInvalidPhone:           "Please enter a valid phone number",
		MsgInvalidURL:             "Please enter a valid URL (https://...)",
		MsgSelectCountryFirst:     "Please select a country first",
		MsgSelectGovernorateFirst: "Please select a governorate first",
		MsgImageRequired:          "A main image is required",
		MsgLinksBounds:            "Between %d and %d links are allowed",
		MsgServiceTypeRequired:    "Please choose a service type",
		MsgInvalidServiceType:     "Unknown service type",
		MsgSelectAtLeastOne:       "Select at least one option",
		MsgSpecialtyRequired:      "Select at least one specialty",
		MsgInvalidOption:          "Invalid option",
		MsgInvalidDate:            "Please enter a valid date (YYYY-MM-DD)",
		MsgEndBeforeStart:         "The end date must not be before the start date",
		MsgItemNamesRequired:      "Both Arabic and English names are required",
		MsgInvalidPrice:           "Please enter a valid price",
		MsgPriceRequired:          "Price is required",
		MsgPriceUnitRequired:      "Price unit is required",
		MsgTermsRequired:          "You must accept the terms and conditions",
		MsgAccuracyRequired:       "You must confirm that the data is accurate",
		MsgKindOfStableRequired:   "Please choose the kind of stable",
		MsgNotAuthenticated:       "Please log in to continue",
		MsgStableOwnerOnly:        "Only stable owners can add a stable",
		MsgStableAlreadyExists:    "You already have a stable",
		MsgSupplierOnly:           "Only suppliers can manage products",
		MsgSubmissionFailed:       "Submission failed, please try again",
		MsgUploadFailed:           "Uploading the images failed, please try again",
		MsgStepInvalid:            "Please fix the highlighted fields",
		MsgSubmitInProgress:       "A submission is already in progress",
		MsgNotOnReviewStep:        "Submission is only possible from the review step",
		MsgOptionNotAvailable:     "The selected option is not available",
		MsgGalleryLimit:           "At most %d gallery images are allowed",
		MsgInvalidStatusChange:    "This status change is not allowed",
		MsgEducationalOnly:        "Only educational service providers can manage courses and books",
		MsgNoStable:               "You have not added a stable yet",
	},
	Arabic: {
		MsgRequired:               "هذا الحقل مطلوب",
		MsgMinLength:              "يجب ألا يقل عن %d حرفًا",
		MsgInvalidNumber:          "يرجى إدخال رقم صحيح",
		MsgNegativeNumber:         "لا يمكن أن تكون القيمة سالبة",
		MsgInvalidInteger:         "يرجى إدخال عدد صحيح",
		MsgMinValue:               "يجب ألا تقل القيمة عن %d",
		MsgInvalidEmail:           "يرجى إدخال بريد إلكتروني صالح",
		MsgInvalidPhone:           "يرجى إدخال رقم هاتف صالح",
		MsgInvalidURL:             "يرجى إدخال رابط صالح (https://...)",
		MsgSelectCountryFirst:     "يرجى اختيار الدولة أولاً",
		MsgSelectGovernorateFirst: "يرجى اختيار المحافظة أولاً",
		MsgImageRequired:          "الصورة الرئيسية مطلوبة",
		MsgLinksBounds:            "يسمح بعدد روابط بين %d و %d",
		MsgServiceTypeRequired:    "يرجى اختيار نوع الخدمة",
		MsgInvalidServiceType:     "نوع خدمة غير معروف",
		MsgSelectAtLeastOne:       "اختر خيارًا واحدًا على الأقل",
		MsgSpecialtyRequired:      "اختر تخصصًا واحدًا على الأقل",
		MsgInvalidOption:          "خيار غير صالح",
		MsgInvalidDate:            "يرجى إدخال تاريخ صالح (YYYY-MM-DD)",
		MsgEndBeforeStart:         "يجب ألا يسبق تاريخ الانتهاء تاريخ البدء",
		MsgItemNamesRequired:      "الاسم بالعربية والإنجليزية مطلوب",
		MsgInvalidPrice:           "يرجى إدخال سعر صالح",
		MsgPriceRequired:          "السعر مطلوب",
		MsgPriceUnitRequired:      "وحدة السعر مطلوبة",
		MsgTermsRequired:          "يجب الموافقة على الشروط والأحكام",
		MsgAccuracyRequired:       "يجب تأكيد صحة البيانات",
		MsgKindOfStableRequired:   "يرجى اختيار نوع الإسطبل",
		MsgNotAuthenticated:       "يرجى تسجيل الدخول للمتابعة",
		MsgStableOwnerOnly:        "يمكن لأصحاب الإسطبلات فقط إضافة إسطبل",
		MsgStableAlreadyExists:    "لديك إسطبل بالفعل",
		MsgSupplierOnly:           "يمكن للموردين فقط إدارة المنتجات",
		MsgSubmissionFailed:       "فشل الإرسال، يرجى المحاولة مرة أخرى",
		MsgUploadFailed:           "فشل رفع الصور، يرجى المحاولة مرة أخرى",
		MsgStepInvalid:            "يرجى تصحيح الحقول المحددة",
		MsgSubmitInProgress:       "جارٍ إرسال الطلب بالفعل",
		MsgNotOnReviewStep:        "لا يمكن الإرسال إلا من خطوة المراجعة",
		MsgOptionNotAvailable:     "الخيار المحدد غير متاح",
		MsgGalleryLimit:           "يسمح بحد أقصى %d صور في المعرض",
		MsgInvalidStatusChange:    "لا يمكن تغيير الحالة بهذا الشكل",
		MsgEducationalOnly:        "يمكن لمقدمي الخدمات التعليمية فقط إدارة الدورات والكتب",
		MsgNoStable:               "لم تقم بإضافة إسطبل بعد",
	},
}
