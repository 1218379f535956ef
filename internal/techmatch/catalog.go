package techmatch

// The signature catalog. Rules are literal ordered lists evaluated top to
// bottom; keep more specific signatures above generic ones within a category.

var cmsRules = []rule{
	{"WordPress", htmlContains("wp-content", "wordpress")},
	{"Shopify", htmlContains("cdn.shopify.com", "shopify")},
	{"Wix", htmlContains("wix.com")},
	{"Squarespace", htmlContains("squarespace.com", "squarespace-cdn")},
	{"Webflow", htmlContains("webflow")},
	{"Drupal", anyOf(htmlContains("drupal"), headerPresent("X-Drupal-Cache"))},
	{"Joomla", htmlContains("joomla")},
	{"Ghost", anyOf(htmlContains("ghost.min.js"), headerContains("X-Powered-By", "ghost"))},
	{"Contentful", htmlContains("ctfassets.net")},
	{"Magento", htmlContains("mage/cookies", "Magento_")},
}

var frameworkRules = []rule{
	{"Next.js", htmlContains("__NEXT_DATA__", "_next/")},
	{"Nuxt.js", htmlContains("__NUXT__")},
	{"Gatsby", htmlContains("___gatsby")},
	{"SvelteKit", htmlContains("data-sveltekit")},
	{"Remix", htmlContains("__remixContext")},
	{"Angular", htmlContains("ng-version", "angular")},
	{"Ember.js", htmlContains("ember-application")},
	{"Vue.js", htmlContains("__vue", "vue")},
	{"React", htmlContains("react", "_react")},
}

var cdnRules = []rule{
	{"Cloudflare", anyOf(headerPresent("CF-Ray"), htmlContains("cloudflare"))},
	{"CloudFront", anyOf(headerPresent("X-Amz-Cf-Id"), htmlContains("cloudfront"))},
	{"Fastly", anyOf(headerPresent("X-Fastly-Request-Id"), headerContains("X-Served-By", "cache-"))},
	{"Akamai", anyOf(headerPresent("X-Akamai-Transaction-Id"), htmlContains("akamaihd.net"))},
	{"bunny.net", headerPresent("CDN-PullZone")},
}

var hostingRules = []rule{
	{"Vercel", headerPresent("X-Vercel-Id")},
	{"Netlify", anyOf(headerPresent("X-NF-Request-Id"), headerContains("Server", "netlify"))},
	{"GitHub Pages", headerContains("Server", "github.com")},
	{"Heroku", headerContains("Via", "vegur")},
	{"Fly.io", headerPresent("Fly-Request-Id")},
}

var edgeRules = []rule{
	{"Cloudflare Workers", headerPresent("CF-Worker")},
	{"Deno Deploy", headerContains("Server", "deno")},
	{"Lambda@Edge", headerPresent("X-Amz-Cf-Pop")},
}

var analyticsRules = []rule{
	{"Google Analytics", htmlContains("google-analytics.com", "gtag")},
	{"Google Tag Manager", htmlContains("googletagmanager.com")},
	{"Facebook Pixel", htmlContains("facebook.net/en_US/fbevents.js", "fbq(")},
	{"Hotjar", htmlContains("hotjar")},
	{"Mixpanel", htmlContains("mixpanel")},
	{"Segment", htmlContains("cdn.segment.com")},
	{"Plausible", htmlContains("plausible.io/js")},
	{"Matomo", htmlContains("matomo.js", "piwik.js")},
	{"Amplitude", htmlContains("amplitude.com/libs", "cdn.amplitude.com")},
	{"Heap", htmlContains("heap-")},
}

var marketingRules = []rule{
	{"HubSpot", htmlContains("js.hs-scripts.com", "hubspot")},
	{"Mailchimp", htmlContains("chimpstatic.com", "list-manage.com")},
	{"Klaviyo", htmlContains("klaviyo.com")},
	{"Marketo", htmlContains("munchkin.js")},
	{"Salesforce Pardot", htmlContains("pardot.com")},
}

var paymentsRules = []rule{
	{"Stripe", htmlContains("js.stripe.com")},
	{"PayPal", htmlContains("paypal.com/sdk", "paypalobjects.com")},
	{"Braintree", htmlContains("braintreegateway.com")},
	{"Square", htmlContains("squareup.com", "square.js")},
	{"Razorpay", htmlContains("checkout.razorpay.com")},
}

var chatRules = []rule{
	{"Intercom", htmlContains("widget.intercom.io", "intercomSettings")},
	{"Zendesk", htmlContains("zdassets.com", "zendesk")},
	{"Drift", htmlContains("js.driftt.com")},
	{"Crisp", htmlContains("client.crisp.chat")},
	{"Tawk.to", htmlContains("embed.tawk.to")},
	{"LiveChat", htmlContains("cdn.livechatinc.com")},
}

var abTestingRules = []rule{
	{"Optimizely", htmlContains("optimizely")},
	{"VWO", htmlContains("dev.visualwebsiteoptimizer.com", "_vwo_")},
	{"Google Optimize", htmlContains("optimize.js", "googleoptimize")},
	{"LaunchDarkly", htmlContains("launchdarkly")},
}

var monitoringRules = []rule{
	{"Sentry", htmlContains("sentry.io", "browser.sentry-cdn.com")},
	{"New Relic", htmlContains("js-agent.newrelic.com", "NREUM")},
	{"Datadog", htmlContains("datadoghq")},
	{"Bugsnag", htmlContains("bugsnag")},
	{"Rollbar", htmlContains("rollbar")},
}

var securityRules = []rule{
	{"reCAPTCHA", htmlContains("www.google.com/recaptcha", "grecaptcha")},
	{"hCaptcha", htmlContains("hcaptcha.com")},
	{"Cloudflare Turnstile", htmlContains("challenges.cloudflare.com/turnstile")},
}

var fontsRules = []rule{
	{"Google Fonts", htmlContains("fonts.googleapis.com", "fonts.gstatic.com")},
	{"Adobe Fonts", htmlContains("use.typekit.net")},
	{"Font Awesome", htmlContains("fontawesome")},
}

var databasesRules = []rule{
	{"Firebase", htmlContains("firebaseio.com", "firebaseapp.com")},
	{"Supabase", htmlContains("supabase.co")},
	{"Algolia", htmlContains("algolianet.com", "algolia.net")},
}

var librariesRules = []rule{
	{"jQuery", htmlContains("jquery")},
	{"Bootstrap", htmlContains("bootstrap")},
	{"Tailwind CSS", htmlContains("tailwind")},
	{"Lodash", htmlContains("lodash")},
	{"D3.js", htmlContains("d3.min.js", "d3js.org")},
	{"GSAP", htmlContains("gsap")},
	{"Alpine.js", htmlContains("alpinejs", "x-data=")},
	{"htmx", htmlContains("htmx.org", "hx-get")},
	{"Moment.js", htmlContains("moment.min.js")},
	{"Axios", htmlContains("axios")},
}
